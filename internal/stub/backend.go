// Package stub 是后端 REST API 的内存实现，给测试和本地联调用。规则是真实后端的简化版。
package stub

import (
	"math"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"MoonColony/internal/api"
	catalogdomain "MoonColony/internal/catalog/domain"
	"MoonColony/internal/catalog/infra/static"
	colonydomain "MoonColony/internal/colony/domain"
	reportdomain "MoonColony/internal/report/domain"
	"MoonColony/internal/shared/idgen"
	world "MoonColony/internal/world/domain"
	"MoonColony/modules/kit/logx"
)

const (
	DefaultGridSize = 100
	// DaysDelivery 是两次补给之间的天数。
	DaysDelivery = 30
	// PeoplePerLivingModule 是每个居住模块容纳的人数。
	PeoplePerLivingModule = 8

	materialIndex = reportdomain.ResourceCount - 1
)

type Options struct {
	GridSize int
	IDs      idgen.Generator
	Log      logx.Logger
}

type resource struct {
	count, production, consumption int64
	sumProduction, sumConsumption  int64
}

type linkKey struct {
	typ, zone1, zone2 int
}

type colonyUser struct {
	id                 int64
	name, email, pwd   string
	live, finished     bool
	curDay             int
	daysBeforeDelivery int
	resources          []resource
	modules            map[int64]api.ModuleDTO
	links              map[linkKey]struct{}
}

// Backend 持有全部用户状态，所有方法并发安全。
type Backend struct {
	mu      sync.Mutex
	grid    int
	ids     idgen.Generator
	types   map[int]catalogdomain.ModuleType
	users   map[int64]*colonyUser
	byEmail map[string]int64
	log     logx.Logger
}

func NewBackend(opts Options) (*Backend, error) {
	if opts.GridSize <= 0 {
		opts.GridSize = DefaultGridSize
	}
	if opts.IDs == nil {
		opts.IDs = idgen.NewSequence(1)
	}
	if opts.Log == nil {
		opts.Log = logx.Nop()
	}
	types, err := static.Types()
	if err != nil {
		return nil, err
	}
	layouts, err := static.Layouts()
	if err != nil {
		return nil, err
	}
	b := &Backend{
		grid:    opts.GridSize,
		ids:     opts.IDs,
		types:   make(map[int]catalogdomain.ModuleType, len(types)),
		users:   make(map[int64]*colonyUser),
		byEmail: make(map[string]int64),
		log:     opts.Log,
	}
	for _, t := range types {
		if l, ok := layouts[t.Name]; ok {
			t = l.Apply(t)
		}
		b.types[t.ID] = t
	}
	return b, nil
}

func (b *Backend) GridSize() int {
	return b.grid
}

func (b *Backend) user(id int64) (*colonyUser, error) {
	u, ok := b.users[id]
	if !ok {
		return nil, ErrUserNotFound.WithData("user_id", id)
	}
	return u, nil
}

func (b *Backend) liveUser(id int64) (*colonyUser, error) {
	u, err := b.user(id)
	if err != nil {
		return nil, err
	}
	if !u.live {
		return nil, ErrColonyFinished.WithData("user_id", id)
	}
	return u, nil
}

// Register 新建用户，邮箱唯一。
func (b *Backend) Register(req api.RegisterRequest) (int64, error) {
	if req.Email == "" || req.Password == "" {
		return 0, ErrReqParamERR.WithMsg("email and password are required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.byEmail[req.Email]; ok {
		return 0, ErrUserExists.WithData("email", req.Email)
	}
	u := &colonyUser{
		id:      b.ids.NextID(),
		name:    req.Name,
		email:   req.Email,
		pwd:     req.Password,
		modules: make(map[int64]api.ModuleDTO),
		links:   make(map[linkKey]struct{}),
	}
	b.users[u.id] = u
	b.byEmail[u.email] = u.id
	b.log.Info("stub user registered", zap.Int64("user_id", u.id), zap.String("email", u.email))
	return u.id, nil
}

// Login 凭据不对时返回 nil，和真实后端一样回 200 空体。
func (b *Backend) Login(cred api.Credentials) *api.UserInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.byEmail[cred.Email]
	if !ok || b.users[id].pwd != cred.Password {
		return nil
	}
	info := b.users[id].info()
	return &info
}

// CreateColony 给用户发初始资源。
func (b *Backend) CreateColony(userID int64) (api.UserInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.user(userID)
	if err != nil {
		return api.UserInfo{}, err
	}
	if u.live {
		return api.UserInfo{}, ErrColonyExists.WithData("user_id", userID)
	}
	u.live, u.finished = true, false
	u.curDay = 0
	u.daysBeforeDelivery = DaysDelivery
	u.resources = make([]resource, 0, reportdomain.ResourceCount)
	for _, r := range colonydomain.NewResourceLedger().Snapshot() {
		u.resources = append(u.resources, resource{count: int64(r.Value)})
	}
	return u.info(), nil
}

// DeleteColony 清空模块、连接和资源。
func (b *Backend) DeleteColony(userID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.user(userID)
	if err != nil {
		return err
	}
	u.modules = make(map[int64]api.ModuleDTO)
	u.links = make(map[linkKey]struct{})
	u.resources = nil
	u.live = false
	return nil
}

func (b *Backend) ModuleTypes() []api.ModuleTypeDTO {
	out := make([]api.ModuleTypeDTO, 0, len(b.types))
	for _, t := range b.types {
		out = append(out, api.ModuleTypeDTO{
			ID: t.ID, Name: t.Name, PeopleRequired: t.PeopleRequired, Cost: t.Cost, IsLivingModule: t.IsLivingModule,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// placeError 返回放置不可行的原因，nil 表示可以放。
func (b *Backend) placeError(u *colonyUser, p api.ModulePlace) (catalogdomain.ModuleType, *Error) {
	t, ok := b.types[p.ModuleType]
	if !ok {
		return t, ErrReqParamERR.WithMsg("unknown module type").WithData("module_type", p.ModuleType)
	}
	if !validZone(p.IDZone) {
		return t, ErrReqParamERR.WithMsg("unknown zone").WithData("zone", p.IDZone)
	}
	taken := b.occupied(u, p.IDZone)
	for _, c := range world.Cover(api.FromWire(api.WireCoord{X: p.X, Y: p.Y}), t.Cells()) {
		if c.X < 0 || c.Z < 0 || c.X >= b.grid || c.Z >= b.grid {
			return t, ErrPlaceNotPossible.WithMsg("out of zone bounds").WithData("x", c.X).WithData("y", c.Z)
		}
		if _, busy := taken[c]; busy {
			return t, ErrPlaceNotPossible.WithMsg("cell is occupied").WithData("x", c.X).WithData("y", c.Z)
		}
	}
	return t, nil
}

func (b *Backend) occupied(u *colonyUser, zone int) map[world.Coord]struct{} {
	taken := make(map[world.Coord]struct{})
	for _, m := range u.modules {
		if m.IDZone != zone {
			continue
		}
		for _, c := range world.Cover(api.FromWire(m.Wire()), b.types[m.ModuleType].Cells()) {
			taken[c] = struct{}{}
		}
	}
	return taken
}

// Check 回答能否放置，不可行时 Possible=false 并带原因，不返回错误。
func (b *Backend) Check(p api.ModulePlace) (api.CheckedPlace, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.liveUser(p.IDUser)
	if err != nil {
		return api.CheckedPlace{}, err
	}
	_, perr := b.placeError(u, p)
	if perr != nil && !isPlaceRejection(perr) {
		return api.CheckedPlace{}, perr
	}
	out := api.CheckedPlace{Possible: perr == nil, Rationality: 50}
	if perr != nil {
		out.Message = perr.Msg()
		return out, nil
	}
	ct := cellTerrain(p.IDZone, p.X, p.Y)
	lc := lunarCoordinates(p.IDZone, p.X, p.Y)
	out.Relief = int(suitability(p.IDZone, p.X, p.Y))
	out.Height = height(p.IDZone, p.X, p.Y)
	out.Angle = ct.Slope
	out.IsFlatArea = ct.Slope < flatSlope
	out.ZoneName = lc.Zone
	out.LunarLatitude, out.LunarLongitude = lc.RawLatitude, lc.RawLongitude
	if il := illumination(p.IDZone); il != nil {
		out.Illumination = int(*il)
	}
	return out, nil
}

func isPlaceRejection(err *Error) bool {
	return err.Code() == CodePlaceNotPossible
}

// CreateModule 建造模块并扣材料，返回模块 id。
func (b *Backend) CreateModule(p api.ModulePlace) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.liveUser(p.IDUser)
	if err != nil {
		return 0, err
	}
	t, perr := b.placeError(u, p)
	if perr != nil {
		return 0, perr
	}
	if u.resources[materialIndex].count < t.Cost {
		return 0, ErrNotEnoughMaterial.WithData("have", u.resources[materialIndex].count).WithData("need", t.Cost)
	}
	u.resources[materialIndex].count -= t.Cost
	m := api.ModuleDTO{ID: b.ids.NextID(), IDZone: p.IDZone, ModuleType: p.ModuleType, X: p.X, Y: p.Y}
	u.modules[m.ID] = m
	u.recalcFlows(b.types)
	return m.ID, nil
}

func (b *Backend) DeleteModule(userID, moduleID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.user(userID)
	if err != nil {
		return err
	}
	if _, ok := u.modules[moduleID]; !ok {
		return ErrModuleNotFound.WithData("module_id", moduleID)
	}
	delete(u.modules, moduleID)
	u.recalcFlows(b.types)
	return nil
}

func (b *Backend) Modules(userID int64) ([]api.ModuleDTO, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.user(userID)
	if err != nil {
		return nil, err
	}
	return u.moduleList(), nil
}

// Optimality 按地形给每个模块打分。
func (b *Backend) Optimality(userID int64) ([]api.Optimality, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.user(userID)
	if err != nil {
		return nil, err
	}
	mods := u.moduleList()
	out := make([]api.Optimality, 0, len(mods))
	for _, m := range mods {
		out = append(out, api.Optimality{ID: m.ID, Relief: int(suitability(m.IDZone, m.X, m.Y)), Rationality: 50})
	}
	return out, nil
}

// ModuleResources 返回模块每天的净产出，按资源顺序。
func (b *Backend) ModuleResources(moduleID int64) ([]api.ResourceDTO, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		m, ok := u.modules[moduleID]
		if !ok {
			continue
		}
		prod, cons := flowVectors(b.types[m.ModuleType])
		out := make([]api.ResourceDTO, 0, len(prod))
		for i := range prod {
			out = append(out, api.ResourceDTO{Type: i, Production: prod[i] - cons[i]})
		}
		return out, nil
	}
	return nil, ErrModuleNotFound.WithData("module_id", moduleID)
}

func validLink(k api.LinkKey) error {
	if k.Type != api.LinkPower && k.Type != api.LinkRoute {
		return ErrReqParamERR.WithMsg("unknown link type").WithData("type", k.Type)
	}
	if !validZone(k.IDZone1) || !validZone(k.IDZone2) || k.IDZone1 == k.IDZone2 {
		return ErrReqParamERR.WithMsg("invalid zones").WithData("zone1", k.IDZone1).WithData("zone2", k.IDZone2)
	}
	return nil
}

// way 是两个分区之间的线路长度，电力线按它扣材料。
func way(z1, z2 int) int64 {
	d := z1 - z2
	if d < 0 {
		d = -d
	}
	return int64(d) * 1500
}

func linkCost(k api.LinkKey) int64 {
	if k.Type == api.LinkPower {
		return way(k.IDZone1, k.IDZone2)
	}
	return 0
}

func (b *Backend) CheckLink(req api.LinkRequest) (api.LinkCheck, error) {
	k := req.PrimaryKey
	if err := validLink(k); err != nil {
		return api.LinkCheck{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.liveUser(k.IDUser)
	if err != nil {
		return api.LinkCheck{}, err
	}
	if _, ok := u.links[linkKey{k.Type, k.IDZone1, k.IDZone2}]; ok {
		return api.LinkCheck{Possible: false, Message: "link already exists"}, nil
	}
	cost := linkCost(k)
	if u.resources[materialIndex].count < cost {
		return api.LinkCheck{Possible: false, Cost: cost, Message: "not enough materials"}, nil
	}
	return api.LinkCheck{Possible: true, Cost: cost}, nil
}

// CreateLink 建立连接，电力线扣材料，返回扣除量。
func (b *Backend) CreateLink(req api.LinkRequest) (int64, error) {
	k := req.PrimaryKey
	if err := validLink(k); err != nil {
		return 0, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.liveUser(k.IDUser)
	if err != nil {
		return 0, err
	}
	key := linkKey{k.Type, k.IDZone1, k.IDZone2}
	if _, ok := u.links[key]; ok {
		return 0, ErrLinkExists.WithData("zone1", k.IDZone1).WithData("zone2", k.IDZone2)
	}
	cost := linkCost(k)
	u.links[key] = struct{}{}
	u.resources[materialIndex].count -= cost
	if u.resources[materialIndex].count < 0 {
		u.live = false
	}
	return cost, nil
}

func (b *Backend) DeleteLink(req api.LinkRequest) error {
	k := req.PrimaryKey
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.liveUser(k.IDUser)
	if err != nil {
		return err
	}
	key := linkKey{k.Type, k.IDZone1, k.IDZone2}
	if _, ok := u.links[key]; !ok {
		return ErrLinkNotFound.WithData("zone1", k.IDZone1).WithData("zone2", k.IDZone2)
	}
	delete(u.links, key)
	return nil
}

func (b *Backend) Links(userID int64) ([]api.LinkDTO, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.user(userID)
	if err != nil {
		return nil, err
	}
	return u.linkList(), nil
}

// OptimalLinks 建议把相邻分区用道路串起来。
func (b *Backend) OptimalLinks(userID int64) ([]api.LinkDTO, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.user(userID); err != nil {
		return nil, err
	}
	out := make([]api.LinkDTO, 0, reportdomain.ZoneCount-1)
	for z := 0; z+1 < reportdomain.ZoneCount; z++ {
		out = append(out, api.LinkDTO{Type: api.LinkRoute, IDZone1: z, IDZone2: z + 1})
	}
	return out, nil
}

// AddDay 推进一天：每种资源按产出减消耗结算，任一资源为负则殖民地死亡。
func (b *Backend) AddDay(userID int64) (api.DayChange, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.liveUser(userID)
	if err != nil {
		return api.DayChange{}, err
	}
	u.curDay++
	if u.daysBeforeDelivery <= 1 {
		u.daysBeforeDelivery = DaysDelivery
	} else {
		u.daysBeforeDelivery--
	}
	diffs := make([]int64, len(u.resources))
	live := true
	for i := range u.resources {
		r := &u.resources[i]
		diffs[i] = r.production - r.consumption
		r.count += diffs[i]
		r.sumProduction += r.production
		r.sumConsumption += r.consumption
		if r.count < 0 {
			live = false
		}
	}
	u.live = live
	return api.DayChange{Live: live, Resources: diffs}, nil
}

func (b *Backend) Resources(userID int64) ([]api.ResourceDTO, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.user(userID)
	if err != nil {
		return nil, err
	}
	return u.resourceList(), nil
}

// UpdateResources 按 type 覆盖资源数量。
func (b *Backend) UpdateResources(userID int64, in []api.ResourceDTO) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.liveUser(userID)
	if err != nil {
		return err
	}
	for _, r := range in {
		if r.Type < 0 || r.Type >= len(u.resources) {
			return ErrReqParamERR.WithMsg("unknown resource type").WithData("type", r.Type)
		}
	}
	for _, r := range in {
		u.resources[r.Type].count = r.Count
	}
	return nil
}

func (b *Backend) FinishColonization(userID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.user(userID)
	if err != nil {
		return err
	}
	u.finished = true
	u.live = false
	return nil
}

func (b *Backend) ColonizationStatus(userID int64) (api.ColonizationStatus, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.user(userID)
	if err != nil {
		return api.ColonizationStatus{}, err
	}
	return api.ColonizationStatus{Finished: u.finished, Live: u.live, CurDay: u.curDay}, nil
}

// Success 计算成功度。每个居住舱住 8 人，岗位需求决定心情，研究模块决定研究速度。
func (b *Backend) Success(userID int64) (api.SuccessMetrics, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.user(userID)
	if err != nil {
		return api.SuccessMetrics{}, err
	}
	return b.success(u), nil
}

func (b *Backend) success(u *colonyUser) api.SuccessMetrics {
	var people, need, research int
	for _, m := range u.modules {
		t := b.types[m.ModuleType]
		switch {
		case t.Name == "LIVE_MODULE_X" || t.Name == "LIVE_MODULE_Y":
			people += PeoplePerLivingModule
		case strings.HasPrefix(t.Name, "RESEARCH_MODULE_"):
			research++
		}
		need += t.PeopleRequired
	}
	mood := clampInt(50+(people-need)*5, 0, 100)

	resources := "Enough"
	var deficit int64
	for _, r := range u.resources {
		if d := r.consumption - r.production; d > 0 {
			deficit += d
		}
	}
	if deficit > 0 {
		resources = "Deficit"
	}
	central := "Poor"
	if len(u.links) >= reportdomain.ZoneCount-1 {
		central = "Good"
	}
	search := clampInt(research*25, 0, 100)
	return api.SuccessMetrics{
		Successful:     (mood + search) / 2,
		Mood:           mood,
		ContPeople:     people,
		NeedContPeople: need,
		Resources:      resources,
		Central:        central,
		Search:         search,
	}
}

// Statistics 汇总报告需要的数据，分区产出按模块所在分区累加。
func (b *Backend) Statistics(userID int64) (api.Statistics, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.user(userID)
	if err != nil {
		return api.Statistics{}, err
	}
	st := api.Statistics{
		CountDay:       u.curDay,
		Successful:     b.success(u).Successful,
		CountResources: make([]float64, reportdomain.ResourceCount),
		SumProduction:  make([]float64, reportdomain.ResourceCount),
		SumConsumption: make([]float64, reportdomain.ResourceCount),
	}
	for i, r := range u.resources {
		if i >= reportdomain.ResourceCount {
			break
		}
		st.CountResources[i] = float64(r.count)
		st.SumProduction[i] = float64(r.sumProduction)
		st.SumConsumption[i] = float64(r.sumConsumption)
	}
	for z := 0; z < reportdomain.ZoneCount; z++ {
		zp := api.ZoneProduction{ID: z, Production: make([]float64, reportdomain.ResourceCount), Consumption: make([]float64, reportdomain.ResourceCount)}
		for _, m := range u.modules {
			if m.IDZone != z {
				continue
			}
			prod, cons := flowVectors(b.types[m.ModuleType])
			for i := range prod {
				zp.Production[i] += float64(prod[i])
				zp.Consumption[i] += float64(cons[i])
			}
		}
		st.ZoneProductions = append(st.ZoneProductions, zp)
	}
	return st, nil
}

func (b *Backend) Areas() []api.Area {
	out := make([]api.Area, 0, reportdomain.ZoneCount)
	for z := 0; z < reportdomain.ZoneCount; z++ {
		out = append(out, api.Area{ID: z, Name: reportdomain.ZoneNames[z], Type: zoneTypes[z], X: z * b.grid})
	}
	return out
}

func (b *Backend) inGrid(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.grid && y < b.grid
}

func (b *Backend) ZoneTerrain(zone int) (api.ZoneTerrain, error) {
	if !validZone(zone) {
		return api.ZoneTerrain{}, ErrReqParamERR.WithMsg("unknown zone").WithData("zone", zone)
	}
	return b.zoneTerrain(zone), nil
}

func (b *Backend) CellTerrain(zone, x, y int) (api.CellTerrain, error) {
	if !validZone(zone) || !b.inGrid(x, y) {
		return api.CellTerrain{}, ErrReqParamERR.WithMsg("cell is outside the zone").WithData("zone", zone)
	}
	return cellTerrain(zone, x, y), nil
}

func (b *Backend) Suitability(zone int) ([]api.SuitabilityCell, error) {
	if !validZone(zone) {
		return nil, ErrReqParamERR.WithMsg("unknown zone").WithData("zone", zone)
	}
	out := make([]api.SuitabilityCell, 0, b.grid*b.grid)
	for x := 0; x < b.grid; x++ {
		for y := 0; y < b.grid; y++ {
			out = append(out, api.SuitabilityCell{X: x, Y: y, Score: suitability(zone, x, y)})
		}
	}
	return out, nil
}

func (b *Backend) LunarCoordinates(zone, x, y int) (api.LunarCoordinates, error) {
	if !validZone(zone) || !b.inGrid(x, y) {
		return api.LunarCoordinates{}, ErrReqParamERR.WithMsg("cell is outside the zone").WithData("zone", zone)
	}
	return lunarCoordinates(zone, x, y), nil
}

func (u *colonyUser) info() api.UserInfo {
	return api.UserInfo{
		Name:              u.name,
		ID:                u.id,
		CurDay:            u.curDay,
		DayBeforeDelivery: u.daysBeforeDelivery,
		Live:              u.live,
		Resources:         u.resourceList(),
		Links:             u.linkList(),
		Modules:           u.moduleList(),
	}
}

func (u *colonyUser) resourceList() []api.ResourceDTO {
	out := make([]api.ResourceDTO, 0, len(u.resources))
	for i, r := range u.resources {
		out = append(out, api.ResourceDTO{Type: i, Count: r.count, Production: r.production - r.consumption})
	}
	return out
}

func (u *colonyUser) moduleList() []api.ModuleDTO {
	out := make([]api.ModuleDTO, 0, len(u.modules))
	for _, m := range u.modules {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (u *colonyUser) linkList() []api.LinkDTO {
	out := make([]api.LinkDTO, 0, len(u.links))
	for k := range u.links {
		out = append(out, api.LinkDTO{Type: k.typ, IDZone1: k.zone1, IDZone2: k.zone2})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IDZone1 != out[j].IDZone1 {
			return out[i].IDZone1 < out[j].IDZone1
		}
		if out[i].IDZone2 != out[j].IDZone2 {
			return out[i].IDZone2 < out[j].IDZone2
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// recalcFlows 按当前模块重算每种资源的日产出与日消耗。
func (u *colonyUser) recalcFlows(types map[int]catalogdomain.ModuleType) {
	for i := range u.resources {
		u.resources[i].production, u.resources[i].consumption = 0, 0
	}
	for _, m := range u.modules {
		prod, cons := flowVectors(types[m.ModuleType])
		for i := range u.resources {
			if i < len(prod) {
				u.resources[i].production += prod[i]
				u.resources[i].consumption += cons[i]
			}
		}
	}
}

// flowVectors 把按资源 id 记的流量展开成按后端顺序排列的数组。
func flowVectors(t catalogdomain.ModuleType) (prod, cons []int64) {
	ids := colonydomain.ResourceIDs()
	prod = make([]int64, len(ids))
	cons = make([]int64, len(ids))
	for i, id := range ids {
		prod[i] = int64(math.Round(t.Flow.Production[id]))
		cons[i] = int64(math.Round(t.Flow.Consumption[id]))
	}
	return prod, cons
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
