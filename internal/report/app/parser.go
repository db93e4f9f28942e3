package app

import (
	"fmt"
	"sort"
	"strconv"

	"MoonColony/internal/api"
	"MoonColony/internal/report/domain"
)

// Parse 把成功度、用户状态和统计展开成固定顺序的 15 张表。
// 入参切片只读，排序都在副本上做。
func Parse(success api.SuccessMetrics, user api.UserInfo, stats api.Statistics) (domain.ReportContext, error) {
	if len(stats.CountResources) < domain.ResourceCount {
		return domain.ReportContext{}, ErrInvalidInput.WithData("count_resources", len(stats.CountResources))
	}
	if len(stats.ZoneProductions) < domain.ZoneCount {
		return domain.ReportContext{}, ErrInvalidInput.WithData("zone_productions", len(stats.ZoneProductions))
	}
	zones := make([]api.ZoneProduction, len(stats.ZoneProductions))
	copy(zones, stats.ZoneProductions)
	sort.SliceStable(zones, func(i, j int) bool { return zones[i].ID < zones[j].ID })
	for i := 0; i < domain.ZoneCount; i++ {
		if len(zones[i].Production) < domain.ResourceCount || len(zones[i].Consumption) < domain.ResourceCount {
			return domain.ReportContext{}, ErrInvalidInput.WithData("zone", zones[i].ID)
		}
	}

	tables := make([]domain.Table, 0, domain.TableCount)
	tables = append(tables, successTable(success), resourcesTable(stats.CountResources), linksTable(user.Links))

	modules := make([]api.ModuleDTO, len(user.Modules))
	copy(modules, user.Modules)
	sort.SliceStable(modules, func(i, j int) bool { return modules[i].ID < modules[j].ID })

	for i := 0; i < domain.ZoneCount; i++ {
		tables = append(tables, zoneTable(i, zones[i]), modulesTable(i, modules))
	}
	return domain.ReportContext{UserName: user.Name, CountDay: stats.CountDay, Tables: tables}, nil
}

// ResourceMetric 是成功度表第二行：min(100, (contPeople-needContPeople)/8)，整数除法向零截断，不设下限。
func ResourceMetric(contPeople, needContPeople int) int {
	v := (contPeople - needContPeople) / 8
	if v > domain.DerivedMetricUp {
		return domain.DerivedMetricUp
	}
	return v
}

func successTable(s api.SuccessMetrics) domain.Table {
	values := []string{
		strconv.Itoa(s.Mood),
		strconv.Itoa(ResourceMetric(s.ContPeople, s.NeedContPeople)),
		s.Resources,
		s.Central,
		strconv.Itoa(s.Search),
	}
	body := make([][]string, 0, len(values))
	for i, v := range values {
		body = append(body, []string{ordinal(i), domain.SuccessLabels[i], v})
	}
	return domain.Table{Name: fmt.Sprintf("Success - %d:", s.Successful), Body: body}
}

func resourcesTable(counts []float64) domain.Table {
	body := make([][]string, 0, domain.ResourceCount)
	for i := 0; i < domain.ResourceCount; i++ {
		body = append(body, []string{ordinal(i), domain.ResourceLabels[i], number(counts[i])})
	}
	return domain.Table{Name: domain.TitleResources, Body: body}
}

// linksTable 对每对 i<j 只找 idZone1==i && idZone2==j 的连接，不做反向匹配。
func linksTable(links []api.LinkDTO) domain.Table {
	body := make([][]string, 0, domain.ZoneCount*(domain.ZoneCount-1)/2)
	for i := 0; i < domain.ZoneCount; i++ {
		for j := i + 1; j < domain.ZoneCount; j++ {
			var power, route bool
			for _, l := range links {
				if l.IDZone1 != i || l.IDZone2 != j {
					continue
				}
				switch l.Type {
				case api.LinkPower:
					power = true
				case api.LinkRoute:
					route = true
				}
			}
			body = append(body, []string{domain.ZoneNames[i], domain.ZoneNames[j], yesNo(route), yesNo(power)})
		}
	}
	return domain.Table{Name: domain.TitleLinks, Headers: headers(domain.LinkHeaders), Body: body}
}

func zoneTable(i int, z api.ZoneProduction) domain.Table {
	body := make([][]string, 0, domain.ResourceCount)
	for r := 0; r < domain.ResourceCount; r++ {
		body = append(body, []string{ordinal(r), domain.ResourceLabels[r], number(z.Production[r]), number(z.Consumption[r])})
	}
	return domain.Table{
		Name:    fmt.Sprintf("%s (%s):", domain.ZoneNames[i], domain.ZoneCoords[i]),
		Headers: headers(domain.ZoneHeaders),
		Body:    body,
	}
}

func modulesTable(zone int, sorted []api.ModuleDTO) domain.Table {
	body := make([][]string, 0)
	n := 0
	for _, m := range sorted {
		if m.IDZone != zone {
			continue
		}
		body = append(body, []string{ordinal(n), ModuleName(m.ModuleType), strconv.Itoa(m.X), strconv.Itoa(m.Y)})
		n++
	}
	return domain.Table{Name: domain.TitleModules, Headers: headers(domain.ModuleHeaders), Body: body}
}

// ModuleName 返回模块类型的显示名，未知类型为 #<type>。
func ModuleName(moduleType int) string {
	if moduleType >= 0 && moduleType < len(domain.ModuleNames) {
		return domain.ModuleNames[moduleType]
	}
	return "#" + strconv.Itoa(moduleType)
}

func ordinal(i int) string {
	return strconv.Itoa(i+1) + "."
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return domain.Yes
	}
	return domain.No
}

// headers 复制共享表头，各表之间互不影响。
func headers(h []string) []string {
	return append([]string(nil), h...)
}
