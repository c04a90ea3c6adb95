package auth

import "sort"

// Service is the allowlist of Telegram users that may drive the bot.
type Service struct {
	allowed map[int64]struct{}
}

func New(ids []int64) *Service {
	s := &Service{allowed: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.allowed[id] = struct{}{}
	}
	return s
}

func (s *Service) IsAllowed(userID int64) bool {
	if s == nil {
		return false
	}
	_, ok := s.allowed[userID]
	return ok
}

// List returns the allowed ids in ascending order.
func (s *Service) List() []int64 {
	out := make([]int64, 0, len(s.allowed))
	for id := range s.allowed {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
