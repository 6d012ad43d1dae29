package synth

import (
	"fmt"

	"go.uber.org/zap"

	"kudata/internal/seed"
	"kudata/pkg/utils"
)

// buildUsers 先批量生成，再为样本里引用到却不存在的 user_id 补占位用户。
// 缺口不是错误，静默补齐，只在日志里留痕。
func (s *Synthesizer) buildUsers(ds *Dataset, orders []seed.OrderRecord, details []seed.DetailRecord) {
	seen := make(map[string]struct{}, s.vol.Users)

	for i := 1; i <= s.vol.Users; i++ {
		salt := utils.NewSalt()
		ds.Users[i] = &User{
			ID:           i,
			Name:         s.fake.Name(),
			Email:        s.uniqueEmail(seen, i),
			Phone:        s.phone(),
			PasswordHash: utils.HashPassword(PlaceholderPassword, salt),
			Salt:         salt,
			Photo:        s.fake.ImageURL(640, 480),
			Status:       s.intn(3) + 1,
		}
	}

	healed := 0
	heal := func(uid int) {
		if _, ok := ds.Users[uid]; ok {
			return
		}
		salt := utils.NewSalt()
		email := fmt.Sprintf("dummy_%d@mail.com", uid)
		seen[email] = struct{}{}
		ds.Users[uid] = &User{
			ID:           uid,
			Name:         s.fake.Name(),
			Email:        email,
			Phone:        s.phone(),
			PasswordHash: utils.HashPassword(PlaceholderPassword, salt),
			Salt:         salt,
			Photo:        s.fake.ImageURL(640, 480),
			Status:       1,
		}
		healed++
	}
	for _, o := range orders {
		heal(o.UserID)
	}
	for _, d := range details {
		heal(d.UserID)
	}
	if healed > 0 {
		s.log.Info("healed missing sample users", zap.Int("count", healed))
	}
}

// uniqueEmail 生成库冲突时退化为带 id 的确定形式
func (s *Synthesizer) uniqueEmail(seen map[string]struct{}, id int) string {
	email := s.fake.Email()
	if _, dup := seen[email]; dup {
		email = fmt.Sprintf("u%d.%s", id, email)
	}
	seen[email] = struct{}{}
	return email
}
