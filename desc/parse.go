package desc

import "fmt"

var primitives = map[byte]Type{
	'V': Void, 'Z': Boolean, 'B': Byte, 'C': Char, 'S': Short,
	'I': Int, 'F': Float, 'J': Long, 'D': Double,
}

// ParseDescriptor parses a field descriptor such as "I" or "[Ljava/lang/String;".
func ParseDescriptor(s string) (Type, error) {
	t, rest, err := nextType(s)
	if err != nil {
		return Type{}, err
	}
	if rest != "" {
		return Type{}, fmt.Errorf("trailing data in descriptor %q", s)
	}
	return t, nil
}

// ParseMethodDescriptor parses a method descriptor such as "(IJ)V".
func ParseMethodDescriptor(s string) (params []Type, ret Type, err error) {
	if len(s) == 0 || s[0] != '(' {
		return nil, Type{}, fmt.Errorf("malformed method descriptor %q", s)
	}
	rest := s[1:]
	for len(rest) > 0 && rest[0] != ')' {
		var p Type
		p, rest, err = nextType(rest)
		if err != nil {
			return nil, Type{}, err
		}
		if p.IsVoid() {
			return nil, Type{}, fmt.Errorf("void parameter in %q", s)
		}
		params = append(params, p)
	}
	if len(rest) == 0 {
		return nil, Type{}, fmt.Errorf("unterminated method descriptor %q", s)
	}
	ret, err = ParseDescriptor(rest[1:])
	return params, ret, err
}

func nextType(s string) (Type, string, error) {
	if s == "" {
		return Type{}, "", fmt.Errorf("empty descriptor")
	}
	if t, ok := primitives[s[0]]; ok {
		return t, s[1:], nil
	}
	switch s[0] {
	case 'L':
		for i := 1; i < len(s); i++ {
			if s[i] == ';' {
				if i == 1 {
					break
				}
				return ObjectType(s[1:i]), s[i+1:], nil
			}
		}
		return Type{}, "", fmt.Errorf("malformed object descriptor %q", s)
	case '[':
		component, rest, err := nextType(s[1:])
		if err != nil {
			return Type{}, "", err
		}
		if component.IsVoid() {
			return Type{}, "", fmt.Errorf("array of void in %q", s)
		}
		return ArrayOf(component), rest, nil
	}
	return Type{}, "", fmt.Errorf("invalid descriptor %q", s)
}
