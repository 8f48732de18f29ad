package ast

type (
	// ScopeID indexes Scopes; 0 means "no scope".
	ScopeID uint32
)

const (
	NoScopeID ScopeID = 0
)

func (id ScopeID) IsValid() bool { return id != NoScopeID }
