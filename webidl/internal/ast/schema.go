package ast

// Schema is the parsed form of one IDL source. Interfaces keep source order.
// Schemas are immutable once parsing returns.
type Schema struct {
	Interfaces []Interface
}

// Interface returns the named interface, if declared.
func (s *Schema) Interface(name string) (*Interface, bool) {
	for i := range s.Interfaces {
		if s.Interfaces[i].Name == name {
			return &s.Interfaces[i], true
		}
	}
	return nil, false
}

type Interface struct {
	Name       string
	Methods    []Method
	Attributes []Attribute
}

// Method returns the named method, if declared.
func (i *Interface) Method(name string) (*Method, bool) {
	for m := range i.Methods {
		if i.Methods[m].Name == name {
			return &i.Methods[m], true
		}
	}
	return nil, false
}

type Method struct {
	Name       string
	ReturnType Type
	Arguments  []Argument
	Static     bool
}

type Attribute struct {
	Name     string
	Type     Type
	Readonly bool
}

type Argument struct {
	Name     string
	Type     Type
	Optional bool
}
