package bad

//dupkey:last
type Names []string

// Base is not marked.
type Base struct {
	ID string
}

//dupkey:first
type Embedded struct {
	Base
	Value string `dupkey:"flatten"`
}

//dupkey:last
type Shared struct {
	A string `dupkey:"alias=x"`
	B string `dupkey:"alias=x"`
}

//dupkey:last
type Repeated struct {
	Value string `dupkey:"alias=value,rename=value"`
}

//dupkey:last
type Empty struct {
	hidden int
}

type (
	//dupkey:first
	Grouped struct {
		X int `json:"x"`
	}

	Plain struct {
		Y int
	}
)

//dupkey:last
type Box[K comparable, V any] struct {
	Key   K      `json:"key"`
	Value V      `json:"value" dupkey:"default"`
	Note  string `json:"-"`
}

func (e Empty) Hidden() int { return e.hidden }
