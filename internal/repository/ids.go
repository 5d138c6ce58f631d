package repository

import "github.com/google/uuid"

// UUIDGenerator issues random UUIDs as record ids, collision-free for the
// process lifetime.
type UUIDGenerator struct{}

var _ IDGenerator = UUIDGenerator{}

func (UUIDGenerator) Next() string { return uuid.NewString() }
