package component

// NameComponent is a human readable label used by hosts that list the store contents
type NameComponent struct {
	Name string
}
