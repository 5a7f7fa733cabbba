package watchpager

// Operator defines a comparison operator used by a Filter.
type Operator string

const (
	OperatorEq     Operator = "="
	OperatorGT     Operator = ">"
	OperatorGTE    Operator = ">="
	OperatorLT     Operator = "<"
	OperatorLTE    Operator = "<="
	OperatorIsNull Operator = "IS NULL"
)

func (o Operator) Valid() bool {
	switch o {
	case OperatorEq, OperatorGT, OperatorGTE, OperatorLT, OperatorLTE, OperatorIsNull:
		return true
	default:
		return false
	}
}

// IsUnary returns true if the operator takes no right-hand value.
func (o Operator) IsUnary() bool {
	return o == OperatorIsNull
}
