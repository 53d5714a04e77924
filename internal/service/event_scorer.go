package service

import (
	"math"

	"shuttersense/backend/internal/dto"
	"shuttersense/backend/internal/model"
)

// ════════════════════════════════════════════════════════════
// 活动五维质量评分
// ════════════════════════════════════════════════════════════
//
// 五个维度各产出 0–100 分，综合分为加权平均（保留一位小数）。
// 权重不要求合计 100；合计为 0 时综合分取中性值 50.0。

const neutralScore = 50.0

// scoreEvent 计算单活动的五维评分与综合分
func scoreEvent(e *model.Event, weights model.ScoringWeights, performerCeiling int) dto.EventScores {
	scores := dto.EventScores{
		VenueQuality:        scoreVenueQuality(e),
		OrganizerReputation: scoreOrganizerReputation(e),
		PerformerLineup:     scorePerformerLineup(e, performerCeiling),
		LogisticsEase:       scoreLogisticsEase(e),
		Readiness:           scoreReadiness(e),
	}
	scores.Composite = composite(scores, weights)
	return scores
}

// scoreVenueQuality 场地质量：rating(1–5) × 20；无地点或无评分取中性值
func scoreVenueQuality(e *model.Event) float64 {
	loc := e.EffectiveLocation()
	if loc == nil || loc.Rating == nil {
		return neutralScore
	}
	return *loc.Rating * 20
}

// scoreOrganizerReputation 主办方口碑：空值策略与场地质量一致
func scoreOrganizerReputation(e *model.Event) float64 {
	if e.Organizer == nil || e.Organizer.Rating == nil {
		return neutralScore
	}
	return *e.Organizer.Rating * 20
}

// scorePerformerLineup 阵容完整度：已确认人数 / 上限，封顶 1.0
func scorePerformerLineup(e *model.Event, ceiling int) float64 {
	if ceiling < 1 {
		ceiling = 1
	}
	ratio := float64(e.ConfirmedPerformerCount()) / float64(ceiling)
	if ratio > 1 {
		ratio = 1
	}
	return ratio * 100
}

// scoreLogisticsEase 后勤便利度：三类事项各自独立计里程碑分后求和。
// 不需要的事项按该类满分计，三项均不需要时恰为 100。
//
//	门票（满分 50）：不需要 +50；需要且已购(purchased/ready) +25，其中 ready 再 +25
//	调休（满分 25）：不需要 +25；需要且已排(booked/approved) +10，其中 approved 再 +15
//	差旅（满分 25）：不需要 +25；需要且已订(booked) +25
//
// 需求未知（NULL）或状态未达里程碑的事项记 0 分。
func scoreLogisticsEase(e *model.Event) float64 {
	score := 0.0

	if e.TicketRequired != nil {
		if !*e.TicketRequired {
			score += 50
		} else if e.TicketStatus != nil {
			if *e.TicketStatus == model.TicketStatusPurchased || *e.TicketStatus == model.TicketStatusReady {
				score += 25
			}
			if *e.TicketStatus == model.TicketStatusReady {
				score += 25
			}
		}
	}

	if e.TimeoffRequired != nil {
		if !*e.TimeoffRequired {
			score += 25
		} else if e.TimeoffStatus != nil {
			if *e.TimeoffStatus == model.TimeoffStatusBooked || *e.TimeoffStatus == model.TimeoffStatusApproved {
				score += 10
			}
			if *e.TimeoffStatus == model.TimeoffStatusApproved {
				score += 15
			}
		}
	}

	if e.TravelRequired != nil {
		if !*e.TravelRequired {
			score += 25
		} else if e.TravelStatus != nil && *e.TravelStatus == model.TravelStatusBooked {
			score += 25
		}
	}

	return score
}

// scoreReadiness 就绪度：已达终态的必需事项占比 × 100；无必需事项记满分。
// 终态：门票 ready、调休 approved、差旅 booked。
func scoreReadiness(e *model.Event) float64 {
	required, ready := 0, 0

	if e.TicketRequired != nil && *e.TicketRequired {
		required++
		if e.TicketStatus != nil && *e.TicketStatus == model.TicketStatusReady {
			ready++
		}
	}
	if e.TimeoffRequired != nil && *e.TimeoffRequired {
		required++
		if e.TimeoffStatus != nil && *e.TimeoffStatus == model.TimeoffStatusApproved {
			ready++
		}
	}
	if e.TravelRequired != nil && *e.TravelRequired {
		required++
		if e.TravelStatus != nil && *e.TravelStatus == model.TravelStatusBooked {
			ready++
		}
	}

	if required == 0 {
		return 100
	}
	return float64(ready) / float64(required) * 100
}

// composite 加权平均，保留一位小数；权重合计为 0 时取中性值
func composite(scores dto.EventScores, weights model.ScoringWeights) float64 {
	sum := weights.Sum()
	if sum == 0 {
		return neutralScore
	}
	weighted := scores.VenueQuality*weights.VenueQuality +
		scores.OrganizerReputation*weights.OrganizerReputation +
		scores.PerformerLineup*weights.PerformerLineup +
		scores.LogisticsEase*weights.LogisticsEase +
		scores.Readiness*weights.Readiness
	return math.Round(weighted/sum*10) / 10
}
