package parser

// Field identifies which RLP field of the transaction is currently being
// decoded. Values are visited strictly in this order; currentField never
// decreases (invariant 6 of the data model).
type Field int

const (
	FieldNone Field = iota
	FieldContent
	// FieldType is never actually visited: the original implementation
	// advances past it unconditionally right after FieldContent (see
	// runContent), and this reimplementation matches that behavior rather
	// than guessing it was meant to be decoded. See DESIGN.md's Open
	// Question note.
	FieldType
	FieldNonce
	FieldGasPrice
	FieldStartGas
	FieldFeeCurrency
	FieldGatewayTo
	FieldGatewayFee
	FieldTo
	FieldValue
	FieldData
	FieldV
	FieldR
	FieldS
	FieldDone
)

func (f Field) String() string {
	switch f {
	case FieldNone:
		return "NONE"
	case FieldContent:
		return "CONTENT"
	case FieldType:
		return "TYPE"
	case FieldNonce:
		return "NONCE"
	case FieldGasPrice:
		return "GASPRICE"
	case FieldStartGas:
		return "STARTGAS"
	case FieldFeeCurrency:
		return "FEECURRENCY"
	case FieldGatewayTo:
		return "GATEWAYTO"
	case FieldGatewayFee:
		return "GATEWAYFEE"
	case FieldTo:
		return "TO"
	case FieldValue:
		return "VALUE"
	case FieldData:
		return "DATA"
	case FieldV:
		return "V"
	case FieldR:
		return "R"
	case FieldS:
		return "S"
	case FieldDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}
