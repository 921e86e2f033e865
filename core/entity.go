package core

// Entity is a unique identifier for an object in the store
// Zero is never allocated and means "no entity"
type Entity uint64
