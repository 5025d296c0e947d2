package promo

// Setters receives promo state changes. UI layers implement it to update
// their view; State is a plain implementation for everyone else.
type Setters interface {
	SetApplied(applied bool)
	SetCode(code string)
	Success(msg string)
	Error(msg string)
}

// State records the last promo update.
type State struct {
	Applied bool   `json:"applied"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Failed  bool   `json:"failed,omitempty"`
}

func (s *State) SetApplied(applied bool) { s.Applied = applied }
func (s *State) SetCode(code string)     { s.Code = code }

func (s *State) Success(msg string) {
	s.Message = msg
	s.Failed = false
}

func (s *State) Error(msg string) {
	s.Message = msg
	s.Failed = true
}
