package state

import "sync"

type Service int

const (
	Camera Service = iota
	Redis
	Recording
	VoiceMarker
)

type State struct {
	sync.RWMutex

	Camera      bool
	Redis       bool
	Recording   bool
	VoiceMarker bool
}

func NewState() *State {
	return &State{
		Camera: true,
		Redis:  true,
	}
}

func (s *State) Get(svc Service) bool {
	s.RLock()
	defer s.RUnlock()
	{
		switch svc {
		case Camera:
			return s.Camera

		case Redis:
			return s.Redis

		case Recording:
			return s.Recording

		case VoiceMarker:
			return s.VoiceMarker
		}
	}
	return false
}

func (s *State) Set(svc Service, state bool) {
	s.Lock()
	defer s.Unlock()
	{
		switch svc {
		case Camera:
			s.Camera = state

		case Redis:
			s.Redis = state

		case Recording:
			s.Recording = state

		case VoiceMarker:
			s.VoiceMarker = state
		}
	}
}
