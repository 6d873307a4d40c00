package difficulty

// Operator is an arithmetic operator used in generated calculations.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
)

// Rules bound the calculations generated for a level.
type Rules struct {
	// MinOperand and MaxOperand bound both operands (inclusive).
	MinOperand int
	MaxOperand int

	// Operators lists the operators that may appear.
	Operators []Operator

	// AllowNegative permits results below zero for subtraction.
	AllowNegative bool
}

// Rules returns the generation bounds for the level.
func (l Level) Rules() Rules {
	switch l {
	case Medium:
		return Rules{
			MinOperand: 2,
			MaxOperand: 50,
			Operators:  []Operator{OpAdd, OpSub, OpMul},
		}
	case Hard:
		return Rules{
			MinOperand:    2,
			MaxOperand:    144,
			Operators:     []Operator{OpAdd, OpSub, OpMul, OpDiv},
			AllowNegative: true,
		}
	default:
		return Rules{
			MinOperand: 0,
			MaxOperand: 10,
			Operators:  []Operator{OpAdd, OpSub},
		}
	}
}
