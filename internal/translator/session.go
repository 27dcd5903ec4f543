package translator

import "github.com/google/uuid"

const sessionPrefix = "session_"

// scope identifier for saved exchanges; build one at startup and pass it down
type Session struct {
	id string
}

func NewSession() *Session {
	return &Session{id: sessionPrefix + uuid.NewString()}
}

// resumes an existing session, e.g. one given on the command line
func ResumeSession(id string) *Session {
	if id == "" {
		return NewSession()
	}

	return &Session{id: id}
}

func (s *Session) ID() string {
	return s.id
}
