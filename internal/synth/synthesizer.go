// Package synth 按固定随机种子生成五张实体表，并把样本记录对账进来，
// 保证装载前每个外键都能在对应的 map 里找到实体。
// 对账顺序固定为 users → locations → orders → products → order-details，
// 后面阶段的懒建路径依赖前面阶段的 map 已经就位。
package synth

import (
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"kudata/internal/seed"
)

// PlaceholderPassword 全部生成用户共用的占位密码
const PlaceholderPassword = "password123"

// Volumes 各实体的生成规模
type Volumes struct {
	Users         int
	Locations     int
	Orders        int
	Products      int
	Categories    int
	CategoryLinks int
	Details       int
}

// DefaultVolumes 源数据工具的默认规模
func DefaultVolumes() Volumes {
	return Volumes{
		Users:         28000,
		Locations:     28000,
		Orders:        10000,
		Products:      50,
		Categories:    12,
		CategoryLinks: 80,
		Details:       20000,
	}
}

// Synthesizer 持有显式的随机状态；同一种子的两次运行产出相同数据
// （用户盐值取自 uuid，是唯一的例外）。
type Synthesizer struct {
	fake *gofakeit.Faker
	rng  *rand.Rand
	vol  Volumes
	log  *zap.Logger
}

func New(seedVal int64, vol Volumes, log *zap.Logger) *Synthesizer {
	if log == nil {
		log = zap.NewNop()
	}
	def := DefaultVolumes()
	if vol.Users <= 0 {
		vol.Users = def.Users
	}
	if vol.Locations <= 0 {
		vol.Locations = def.Locations
	}
	if vol.Orders <= 0 {
		vol.Orders = def.Orders
	}
	if vol.Products <= 0 {
		vol.Products = def.Products
	}
	if vol.Categories <= 0 {
		vol.Categories = def.Categories
	}
	if vol.CategoryLinks <= 0 {
		vol.CategoryLinks = def.CategoryLinks
	}
	if vol.Details <= 0 {
		vol.Details = def.Details
	}
	return &Synthesizer{
		fake: gofakeit.New(uint64(seedVal)),
		rng:  rand.New(rand.NewSource(seedVal)),
		vol:  vol,
		log:  log,
	}
}

// Build 生成并对账整个数据集
func (s *Synthesizer) Build(orders []seed.OrderRecord, details []seed.DetailRecord) *Dataset {
	ds := &Dataset{
		Users:     make(map[int]*User, s.vol.Users),
		Locations: NewLocationSet(),
		Orders:    make(map[int]*Order, s.vol.Orders),
		Products:  make(map[int]*Product, s.vol.Products),
	}

	s.buildUsers(ds, orders, details)
	s.buildLocations(ds)
	s.buildOrders(ds, orders)
	s.buildProducts(ds, details)
	s.buildDetails(ds, details)

	s.log.Info("dataset synthesized",
		zap.Int("users", len(ds.Users)),
		zap.Int("locations", ds.Locations.Len()),
		zap.Int("orders", len(ds.Orders)),
		zap.Int("products", len(ds.Products)),
		zap.Int("order_details", len(ds.Details)),
	)
	return ds
}

// ---- 随机辅助 ----

func (s *Synthesizer) intn(n int) int { return s.rng.Intn(n) }

// randDate 闭区间 [start, end] 内按天随机
func (s *Synthesizer) randDate(start, end time.Time) time.Time {
	if start.After(end) {
		start, end = end, start
	}
	days := int(end.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, s.intn(days+1))
}

// phone 08 开头，总长 10~14 位
func (s *Synthesizer) phone() string {
	rest := 8 + s.intn(5)
	return "08" + s.fake.DigitN(uint(rest))
}

func (s *Synthesizer) address() string {
	return strings.ReplaceAll(s.fake.Address().Address, "\n", ", ")
}

func (s *Synthesizer) word() string {
	return capitalize(s.fake.Word())
}

func capitalize(w string) string {
	r := []rune(w)
	if len(r) == 0 {
		return w
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func maxKey[V any](m map[int]V) int {
	max := 0
	for k := range m {
		if k > max {
			max = k
		}
	}
	return max
}
