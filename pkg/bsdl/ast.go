package bsdl

import (
	"strconv"
	"strings"
)

// BSDLFile is a parsed BSDL document. A file holds a single entity.
type BSDLFile struct {
	Entity *Entity `@@`
}

// Entity is the top-level declaration:
//
//	entity SN74BCT8244A is ... end SN74BCT8244A;
type Entity struct {
	Name    string         `KwEntity @Ident KwIs`
	Generic *GenericClause `@@?`
	Port    *PortClause    `@@?`
	Decls   []*EntityDecl  `@@*`
	EndName string         `KwEnd ( KwEntity )? @Ident? Semicolon`
}

// EntityDecl is a use clause or an attribute in the entity body.
type EntityDecl struct {
	UseClause *UseClause `  @@`
	Attribute *Attribute `| @@`
}

// GetUseClause returns the first use clause, or nil.
func (e *Entity) GetUseClause() *UseClause {
	for _, decl := range e.Decls {
		if decl.UseClause != nil {
			return decl.UseClause
		}
	}
	return nil
}

// GetAttributes returns the attributes and constants in declaration order.
func (e *Entity) GetAttributes() []*Attribute {
	var attrs []*Attribute
	for _, decl := range e.Decls {
		if decl.Attribute != nil {
			attrs = append(attrs, decl.Attribute)
		}
	}
	return attrs
}

// Attribute returns the first attribute specification with the given name.
// Names compare case-insensitively.
func (e *Entity) Attribute(name string) *AttributeSpec {
	for _, attr := range e.GetAttributes() {
		if attr.Spec != nil && strings.EqualFold(attr.Spec.Name, name) {
			return attr.Spec
		}
	}
	return nil
}

// Constants returns the constants of the given type, e.g. PIN_MAP_STRING.
func (e *Entity) Constants(typ string) []*ConstantAttribute {
	var out []*ConstantAttribute
	for _, attr := range e.GetAttributes() {
		if attr.Constant != nil && strings.EqualFold(attr.Constant.Type, typ) {
			out = append(out, attr.Constant)
		}
	}
	return out
}

// GenericDefault returns the default value of a generic parameter.
func (e *Entity) GenericDefault(name string) (string, bool) {
	if e.Generic == nil {
		return "", false
	}
	for _, g := range e.Generic.Generics {
		if strings.EqualFold(g.Name, name) && g.DefaultValue != nil {
			return g.DefaultValue.GetValue(), true
		}
	}
	return "", false
}

// Ports returns the declared ports in order.
func (e *Entity) Ports() []*Port {
	if e.Port == nil {
		return nil
	}
	return e.Port.Ports
}

// GenericClause lists the generic parameters:
//
//	generic (PHYSICAL_PIN_MAP : string := "DW");
type GenericClause struct {
	Generics []*Generic `KwGeneric LParen ( @@ ( Semicolon @@ )* )? RParen Semicolon`
}

// Generic is one generic parameter.
type Generic struct {
	Name         string  `@Ident`
	Type         string  `Colon @( Ident | KwString | KwInteger | KwReal | KwBoolean )`
	DefaultValue *String `( Assign @@ )?`
}

// PortClause lists the ports. One declaration may name several ports:
//
//	port (OE_NEG1, OE_NEG2 : in bit; Y1 : out bit_vector(1 to 4); GND : linkage bit);
type PortClause struct {
	Ports []*Port `KwPort LParen ( @@ ( Semicolon @@ )* Semicolon? )? RParen Semicolon`
}

// Port is one port declaration.
type Port struct {
	Names []string  `@Ident ( Comma @Ident )*`
	Mode  string    `Colon @( KwIn | KwOut | KwInout | KwBuffer | KwLinkage )`
	Type  *PortType `@@`
}

// Signals returns the signal names of the port. A bit vector expands to
// NAME(i) for every index, in declaration order.
func (p *Port) Signals() []string {
	var out []string
	for _, name := range p.Names {
		if p.Type == nil || p.Type.Range == nil {
			out = append(out, name)
			continue
		}
		for _, i := range p.Type.Range.Indices() {
			out = append(out, name+"("+strconv.Itoa(i)+")")
		}
	}
	return out
}

// PortType is bit or bit_vector with a range.
type PortType struct {
	Name  string     `@( KwBit | KwBitVector | KwString )`
	Range *RangeSpec `@@?`
}

// RangeSpec is an index range such as (7 downto 0).
type RangeSpec struct {
	Start     int    `LParen @Integer`
	Direction string `@Ident`
	End       int    `@Integer RParen`
}

// Indices lists the range from Start to End, stepping in the declared
// direction. A range pointing the wrong way for its direction is empty.
func (r *RangeSpec) Indices() []int {
	var out []int
	if strings.EqualFold(r.Direction, "downto") {
		for i := r.Start; i >= r.End; i-- {
			out = append(out, i)
		}
		return out
	}
	for i := r.Start; i <= r.End; i++ {
		out = append(out, i)
	}
	return out
}

// Width is the number of bits in the range.
func (r *RangeSpec) Width() int {
	return len(r.Indices())
}

// UseClause names the standard package, e.g. use STD_1149_1_2001.all;
type UseClause struct {
	Package string `KwUse @Ident`
	Dot     string `Dot @( Ident | KwAll ) Semicolon`
}

// Attribute is a constant declaration or an attribute specification.
type Attribute struct {
	Constant *ConstantAttribute `  @@`
	Spec     *AttributeSpec     `| @@`
}

// ConstantAttribute is a constant, mostly pin maps:
//
//	constant DW : PIN_MAP_STRING := "OE_NEG1 : 1," & "Y1 : (2, 3, 4, 5)";
type ConstantAttribute struct {
	Name  string      `KwConstant @Ident`
	Type  string      `Colon @Ident`
	Value *Expression `Assign @@ Semicolon`
}

// AttributeSpec is an attribute of the entity or of one of its ports:
//
//	attribute INSTRUCTION_LENGTH of SN74BCT8244A : entity is 8;
type AttributeSpec struct {
	Name       string      `KwAttribute @Ident`
	Of         string      `KwOf @Ident`
	EntityType string      `Colon @( Ident | KwEntity | "signal" | KwConstant )`
	Is         *Expression `KwIs @@ Semicolon`
}

// Expression is a single value or a & concatenation of values.
type Expression struct {
	Terms []*ExpressionTerm `@@ ( Concat @@ )*`
}

// ExpressionTerm is one operand of an expression.
type ExpressionTerm struct {
	String  *String  `  @@`
	Integer *int     `| @Integer`
	Real    *float64 `| @Real`
	Binary  *string  `| @BinaryLit`
	Ident   *string  `| @Ident`
	Tuple   *Tuple   `| @@`
	Boolean *bool    `| ( @KwTrue | KwFalse )`
}

// Tuple is a parenthesised list, e.g. (35.0e6, BOTH).
type Tuple struct {
	Values []*Expression `LParen @@ ( Comma @@ )* RParen`
}

// String is a quoted literal.
type String struct {
	Value string `@String`
}

// GetValue returns the literal without its quotes.
func (s *String) GetValue() string {
	if len(s.Value) >= 2 && s.Value[0] == '"' && s.Value[len(s.Value)-1] == '"' {
		return s.Value[1 : len(s.Value)-1]
	}
	return s.Value
}

// GetConcatenatedString joins the string literals of the expression.
func (e *Expression) GetConcatenatedString() string {
	var b strings.Builder
	for _, term := range e.Terms {
		if term.String != nil {
			b.WriteString(term.String.GetValue())
		}
	}
	return b.String()
}

// GetInteger returns the value of a single-integer expression.
func (e *Expression) GetInteger() (int, bool) {
	if len(e.Terms) == 1 && e.Terms[0].Integer != nil {
		return *e.Terms[0].Integer, true
	}
	return 0, false
}

// GetIdent returns the name of a single-identifier expression.
func (e *Expression) GetIdent() (string, bool) {
	if len(e.Terms) == 1 && e.Terms[0].Ident != nil {
		return *e.Terms[0].Ident, true
	}
	return "", false
}
