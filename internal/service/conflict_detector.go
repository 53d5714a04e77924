package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"shuttersense/backend/internal/model"
)

// ── 冲突类型与冲突组状态 ──

const (
	ConflictTypeTimeOverlap  = "time_overlap"
	ConflictTypeDistance     = "distance"
	ConflictTypeTravelBuffer = "travel_buffer"

	GroupStatusUnresolved        = "unresolved"
	GroupStatusPartiallyResolved = "partially_resolved"
	GroupStatusResolved          = "resolved"
)

// ConflictEdge 无向冲突边（不可变值对象）
// 定型后恒有 EventAGUID < EventBGUID；同一对活动可因不同
// 冲突类型各有一条边，类型不同的边不合并。
type ConflictEdge struct {
	EventAGUID   string
	EventBGUID   string
	ConflictType string
	Detail       string
}

// canonicalEdge 生成定型边：保证 a < b（字典序）
// 返回新值而非交换入参字段，避免边在检测与分组阶段被共享时产生别名问题。
func canonicalEdge(a, b, conflictType, detail string) ConflictEdge {
	if a > b {
		a, b = b, a
	}
	return ConflictEdge{EventAGUID: a, EventBGUID: b, ConflictType: conflictType, Detail: detail}
}

// detectConflicts 对区间内活动执行三轮独立检测，返回全部冲突边。
// 三轮互不影响，每轮对各自候选集做 O(n²) 配对；
// 缺失的时间/坐标数据只会让该对跳过该类检测，不构成错误。
func detectConflicts(events []model.Event, rules model.ConflictRules) []ConflictEdge {
	edges := detectTimeOverlaps(events)
	edges = append(edges, detectDistanceConflicts(events, rules)...)
	edges = append(edges, detectTravelBufferConflicts(events, rules)...)
	return edges
}

// ════════════════════════════════════════════════════════════
// 第一轮：同日时间重叠
// ════════════════════════════════════════════════════════════

// detectTimeOverlaps 按日期分桶，同日两两比较。
// 任一方为全天、或任一方起止时间缺失时保守判定为重叠；
// 否则按半开区间判定：a.start < b.end && b.start < a.end。
// "HH:MM" 为零填充 24 小时制，字典序即时间序。
func detectTimeOverlaps(events []model.Event) []ConflictEdge {
	byDate := make(map[string][]model.Event)
	for _, e := range events {
		key := e.EventDate.Format("2006-01-02")
		byDate[key] = append(byDate[key], e)
	}

	var edges []ConflictEdge
	for date, dayEvents := range byDate {
		for i := 0; i < len(dayEvents); i++ {
			for j := i + 1; j < len(dayEvents); j++ {
				a, b := dayEvents[i], dayEvents[j]
				overlap, detail := timeOverlapDetail(date, a, b)
				if overlap {
					edges = append(edges, canonicalEdge(a.EventGUID, b.EventGUID, ConflictTypeTimeOverlap, detail))
				}
			}
		}
	}
	return edges
}

func timeOverlapDetail(date string, a, b model.Event) (bool, string) {
	if a.IsAllDay || b.IsAllDay {
		return true, fmt.Sprintf("%s 同日冲突（含全天活动）", date)
	}
	if a.StartTime == nil || a.EndTime == nil || b.StartTime == nil || b.EndTime == nil {
		// 时段缺失按重叠处理
		return true, fmt.Sprintf("%s 同日冲突（时段信息不完整）", date)
	}
	if *a.StartTime < *b.EndTime && *b.StartTime < *a.EndTime {
		return true, fmt.Sprintf("%s 时间重叠：%s–%s 与 %s–%s",
			date, *a.StartTime, *a.EndTime, *b.StartTime, *b.EndTime)
	}
	return false, ""
}

// ════════════════════════════════════════════════════════════
// 第二轮：近日远距（异地连拍）
// ════════════════════════════════════════════════════════════

// detectDistanceConflicts 对日期差 ≤ consecutive_window_days 的活动对，
// 解析各自生效地点坐标并计算大圆距离，超过 colocation_radius_miles 判为冲突。
// 半径 ≤ 0 时整轮跳过。
func detectDistanceConflicts(events []model.Event, rules model.ConflictRules) []ConflictEdge {
	if rules.ColocationRadiusMiles <= 0 {
		return nil
	}

	var edges []ConflictEdge
	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			a, b := events[i], events[j]
			dayGap := daysBetween(a.EventDate, b.EventDate)
			if dayGap > rules.ConsecutiveWindowDays {
				continue
			}
			locA, locB := a.EffectiveLocation(), b.EffectiveLocation()
			if !locA.HasCoordinates() || !locB.HasCoordinates() {
				continue
			}
			dist := haversineMiles(*locA.Latitude, *locA.Longitude, *locB.Latitude, *locB.Longitude)
			if dist > rules.ColocationRadiusMiles {
				detail := fmt.Sprintf("相隔 %d 天的两场活动相距约 %d 英里", dayGap, int(math.Round(dist)))
				edges = append(edges, canonicalEdge(a.EventGUID, b.EventGUID, ConflictTypeDistance, detail))
			}
		}
	}
	return edges
}

// ════════════════════════════════════════════════════════════
// 第三轮：差旅缓冲不足
// ════════════════════════════════════════════════════════════

// detectTravelBufferConflicts 仅对至少一方 travel_required = true 的活动对生效：
// 日期差严格小于 travel_buffer_days 且距离超过 distance_threshold_miles
//（注意：与第二轮的 colocation_radius_miles 是两个独立阈值）时判为冲突。
// travel_buffer_days ≤ 0 时整轮跳过。
func detectTravelBufferConflicts(events []model.Event, rules model.ConflictRules) []ConflictEdge {
	if rules.TravelBufferDays <= 0 {
		return nil
	}

	var edges []ConflictEdge
	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			a, b := events[i], events[j]
			aTravel := a.TravelRequired != nil && *a.TravelRequired
			bTravel := b.TravelRequired != nil && *b.TravelRequired
			if !aTravel && !bTravel {
				continue
			}
			dayGap := daysBetween(a.EventDate, b.EventDate)
			if dayGap >= rules.TravelBufferDays {
				continue
			}
			locA, locB := a.EffectiveLocation(), b.EffectiveLocation()
			if !locA.HasCoordinates() || !locB.HasCoordinates() {
				continue
			}
			dist := haversineMiles(*locA.Latitude, *locA.Longitude, *locB.Latitude, *locB.Longitude)
			if dist > rules.DistanceThresholdMiles {
				detail := fmt.Sprintf("间隔仅 %d 天、相距约 %d 英里，差旅缓冲不足", dayGap, int(math.Round(dist)))
				edges = append(edges, canonicalEdge(a.EventGUID, b.EventGUID, ConflictTypeTravelBuffer, detail))
			}
		}
	}
	return edges
}

// ── 几何与日期工具 ──

const earthRadiusMiles = 3958.8

// haversineMiles 两坐标间大圆距离（英里）
func haversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	dPhi := (lat2 - lat1) * degToRad
	dLambda := (lon2 - lon1) * degToRad

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// daysBetween 两日期相差的天数绝对值（按日期部分截断，不做时区归一）
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ta := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	tb := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	days := int(ta.Sub(tb).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// ════════════════════════════════════════════════════════════
// 并查集分组
// ════════════════════════════════════════════════════════════

// unionFind 每次检测调用都新建，不跨调用共享任何状态
type unionFind struct {
	parent map[string]string
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[string]string)}
}

func (uf *unionFind) add(guid string) {
	if _, ok := uf.parent[guid]; !ok {
		uf.parent[guid] = guid
	}
}

// find 路径压缩查找
func (uf *unionFind) find(guid string) string {
	root := guid
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[guid] != root {
		uf.parent[guid], guid = root, uf.parent[guid]
	}
	return root
}

func (uf *unionFind) union(a, b string) {
	ra, rb := uf.find(a), uf.find(b)
	if ra != rb {
		uf.parent[rb] = ra
	}
}

// conflictGroup 分组结果（瞬态，仅在单次检测调用内存在）
type conflictGroup struct {
	GroupID     string
	MemberGUIDs []string
	Edges       []ConflictEdge
}

// groupEdges 将冲突边聚成连通分量。
// 只有出现在至少一条边上的活动才会入组；组号按分量根的字典序
// 依次赋 cg_1、cg_2…，同一输入必得同一输出。
func groupEdges(edges []ConflictEdge) []conflictGroup {
	if len(edges) == 0 {
		return nil
	}

	uf := newUnionFind()
	for _, e := range edges {
		uf.add(e.EventAGUID)
		uf.add(e.EventBGUID)
		uf.union(e.EventAGUID, e.EventBGUID)
	}

	memberSets := make(map[string]map[string]struct{})
	edgesByRoot := make(map[string][]ConflictEdge)
	for _, e := range edges {
		root := uf.find(e.EventAGUID)
		if memberSets[root] == nil {
			memberSets[root] = make(map[string]struct{})
		}
		memberSets[root][e.EventAGUID] = struct{}{}
		memberSets[root][e.EventBGUID] = struct{}{}
		edgesByRoot[root] = append(edgesByRoot[root], e)
	}

	roots := make([]string, 0, len(memberSets))
	for root := range memberSets {
		roots = append(roots, root)
	}
	sort.Strings(roots)

	groups := make([]conflictGroup, 0, len(roots))
	for i, root := range roots {
		members := make([]string, 0, len(memberSets[root]))
		for guid := range memberSets[root] {
			members = append(members, guid)
		}
		sort.Strings(members)

		groupEdges := edgesByRoot[root]
		sort.Slice(groupEdges, func(x, y int) bool {
			a, b := groupEdges[x], groupEdges[y]
			if a.EventAGUID != b.EventAGUID {
				return a.EventAGUID < b.EventAGUID
			}
			if a.EventBGUID != b.EventBGUID {
				return a.EventBGUID < b.EventBGUID
			}
			return a.ConflictType < b.ConflictType
		})

		groups = append(groups, conflictGroup{
			GroupID:     fmt.Sprintf("cg_%d", i+1),
			MemberGUIDs: members,
			Edges:       groupEdges,
		})
	}
	return groups
}

// deriveGroupStatus 由成员出席状态推导组状态。
// 任一端点 attendance = skipped 的边视为已解决；
// 全部已解决 → resolved，部分 → partially_resolved，均未 → unresolved。
// 无边的组按 resolved 处理（正常流程不会出现，仅作退化兜底）。
func deriveGroupStatus(edges []ConflictEdge, attendance map[string]string) string {
	if len(edges) == 0 {
		return GroupStatusResolved
	}
	resolved := 0
	for _, e := range edges {
		if attendance[e.EventAGUID] == model.AttendanceSkipped ||
			attendance[e.EventBGUID] == model.AttendanceSkipped {
			resolved++
		}
	}
	switch resolved {
	case len(edges):
		return GroupStatusResolved
	case 0:
		return GroupStatusUnresolved
	default:
		return GroupStatusPartiallyResolved
	}
}
