package synth

// LocationSet 按 user_id 建索引的地址集合。
// 源工具逐次全表线性扫，这里换成 map-of-lists，行为不变：
// 同一用户取最早创建的那条。
type LocationSet struct {
	all    map[int]*Location
	byUser map[int][]int
	nextID int
}

func NewLocationSet() *LocationSet {
	return &LocationSet{
		all:    make(map[int]*Location),
		byUser: make(map[int][]int),
		nextID: 1,
	}
}

func (ls *LocationSet) add(loc *Location) {
	ls.all[loc.ID] = loc
	ls.byUser[loc.UserID] = append(ls.byUser[loc.UserID], loc.ID)
	if loc.ID >= ls.nextID {
		ls.nextID = loc.ID + 1
	}
}

// FirstFor 该用户最早的地址 id，没有则返回 0
func (ls *LocationSet) FirstFor(userID int) int {
	if ids := ls.byUser[userID]; len(ids) > 0 {
		return ids[0]
	}
	return 0
}

func (ls *LocationSet) Get(id int) *Location { return ls.all[id] }

func (ls *LocationSet) Len() int { return len(ls.all) }

// All 全部地址（乱序，由调用方决定是否排序）
func (ls *LocationSet) All() map[int]*Location { return ls.all }

// Ensure 返回该用户已有的地址 id，没有就按 type=1/status=1 懒建一条。
// 两次调用之间没有插入时结果不变。
func (s *Synthesizer) ensureUserLocation(ds *Dataset, userID int) int {
	if id := ds.Locations.FirstFor(userID); id != 0 {
		return id
	}
	loc := &Location{
		ID:       ds.Locations.nextID,
		Type:     1,
		Status:   1,
		UserID:   userID,
		Location: s.fake.City(),
		Address:  s.address(),
	}
	ds.Locations.add(loc)
	return loc.ID
}

func (s *Synthesizer) buildLocations(ds *Dataset) {
	userIDs := sortedKeys(ds.Users)
	// 城市/地址用小池子复用，贴近真实数据里的重复度
	cities := make([]string, 0, cityPoolSize)
	addrs := make([]string, 0, cityPoolSize)
	for i := 0; i < cityPoolSize; i++ {
		cities = append(cities, s.fake.City())
		addrs = append(addrs, s.address())
	}

	for i := 1; i <= s.vol.Locations; i++ {
		ds.Locations.add(&Location{
			ID:       i,
			Type:     s.intn(3) + 1,
			Status:   s.intn(3) + 1,
			UserID:   userIDs[s.intn(len(userIDs))],
			Location: cities[s.intn(len(cities))],
			Address:  addrs[s.intn(len(addrs))],
		})
	}
}

const cityPoolSize = 500
