package diagnostics

// ErrorCode identifies a diagnostic. Codes are grouped by the stage that
// reports them; the rendered form is a letter for the stage and a number
// (e.g. A2004).
type ErrorCode int

const (
	// Lexer errors (L0001-L0999)
	LexerInvalidCharacter ErrorCode = iota
	LexerUnterminatedString
	LexerUnterminatedComment
	LexerInvalidNumber
	LexerInvalidEscape

	// Parser errors (P1000-P1999)
	ParserUnexpectedToken
	ParserExpectedToken
	ParserUnexpectedEOF
	ParserInvalidExpression
	ParserInvalidStatement
	ParserInvalidType
	ParserInvalidPattern
	ParserInvalidFunction
	ParserInvalidStruct
	ParserInvalidEnum
	ParserInvalidInterface
	ParserInvalidModule
	ParserInvalidImport
	ParserInvalidExport

	// Analyzer errors (A2000-A2999)
	AnalyzerUndefinedVariable
	AnalyzerUndefinedFunction
	AnalyzerUndefinedType
	AnalyzerTypeMismatch
	AnalyzerTraitNotImplemented
	AnalyzerNonExhaustiveMatch
	AnalyzerDuplicateDefinition
	AnalyzerCircularDependency
	AnalyzerInvalidGeneric
	AnalyzerInvalidTraitBound
	AnalyzerInvalidInterface
	AnalyzerInvalidImplementation
	AnalyzerInvalidModule
	AnalyzerInvalidImport
	AnalyzerInvalidExport

	// Codegen errors (C3000-C3999)
	CodegenInvalidType
	CodegenInvalidExpression
	CodegenInvalidFunction
	CodegenInvalidStruct
	CodegenInvalidEnum
	CodegenInvalidInterface
	CodegenInvalidModule
	CodegenInvalidImport
	CodegenInvalidExport

	// Runtime errors (R4000-R4999)
	RuntimePanic
	RuntimeTaskError
	RuntimeMemoryError
	RuntimeTypeError
	RuntimeValueError
)

type codeInfo struct {
	code     string
	category string
}

var codeTable = map[ErrorCode]codeInfo{
	LexerInvalidCharacter:    {"L0001", "Lexer"},
	LexerUnterminatedString:  {"L0002", "Lexer"},
	LexerUnterminatedComment: {"L0003", "Lexer"},
	LexerInvalidNumber:       {"L0004", "Lexer"},
	LexerInvalidEscape:       {"L0005", "Lexer"},

	ParserUnexpectedToken:   {"P1000", "Parser"},
	ParserExpectedToken:     {"P1001", "Parser"},
	ParserUnexpectedEOF:     {"P1002", "Parser"},
	ParserInvalidExpression: {"P1003", "Parser"},
	ParserInvalidStatement:  {"P1004", "Parser"},
	ParserInvalidType:       {"P1005", "Parser"},
	ParserInvalidPattern:    {"P1006", "Parser"},
	ParserInvalidFunction:   {"P1007", "Parser"},
	ParserInvalidStruct:     {"P1008", "Parser"},
	ParserInvalidEnum:       {"P1009", "Parser"},
	ParserInvalidInterface:  {"P1010", "Parser"},
	ParserInvalidModule:     {"P1011", "Parser"},
	ParserInvalidImport:     {"P1012", "Parser"},
	ParserInvalidExport:     {"P1013", "Parser"},

	AnalyzerUndefinedVariable:     {"A2000", "Analyzer"},
	AnalyzerUndefinedFunction:     {"A2001", "Analyzer"},
	AnalyzerUndefinedType:         {"A2002", "Analyzer"},
	AnalyzerTypeMismatch:          {"A2003", "Analyzer"},
	AnalyzerTraitNotImplemented:   {"A2004", "Analyzer"},
	AnalyzerNonExhaustiveMatch:    {"A2005", "Analyzer"},
	AnalyzerDuplicateDefinition:   {"A2006", "Analyzer"},
	AnalyzerCircularDependency:    {"A2007", "Analyzer"},
	AnalyzerInvalidGeneric:        {"A2008", "Analyzer"},
	AnalyzerInvalidTraitBound:     {"A2009", "Analyzer"},
	AnalyzerInvalidInterface:      {"A2010", "Analyzer"},
	AnalyzerInvalidImplementation: {"A2011", "Analyzer"},
	AnalyzerInvalidModule:         {"A2012", "Analyzer"},
	AnalyzerInvalidImport:         {"A2013", "Analyzer"},
	AnalyzerInvalidExport:         {"A2014", "Analyzer"},

	CodegenInvalidType:       {"C3000", "Codegen"},
	CodegenInvalidExpression: {"C3001", "Codegen"},
	CodegenInvalidFunction:   {"C3002", "Codegen"},
	CodegenInvalidStruct:     {"C3003", "Codegen"},
	CodegenInvalidEnum:       {"C3004", "Codegen"},
	CodegenInvalidInterface:  {"C3005", "Codegen"},
	CodegenInvalidModule:     {"C3006", "Codegen"},
	CodegenInvalidImport:     {"C3007", "Codegen"},
	CodegenInvalidExport:     {"C3008", "Codegen"},

	RuntimePanic:       {"R4000", "Runtime"},
	RuntimeTaskError:   {"R4001", "Runtime"},
	RuntimeMemoryError: {"R4002", "Runtime"},
	RuntimeTypeError:   {"R4003", "Runtime"},
	RuntimeValueError:  {"R4004", "Runtime"},
}

// String returns the rendered code, e.g. "A2004".
func (c ErrorCode) String() string {
	if info, ok := codeTable[c]; ok {
		return info.code
	}
	return "E0000"
}

// Category returns the stage that owns the code.
func (c ErrorCode) Category() string {
	if info, ok := codeTable[c]; ok {
		return info.category
	}
	return "Unknown"
}

// ParseErrorCode maps a rendered code back to its ErrorCode.
func ParseErrorCode(s string) (ErrorCode, bool) {
	for code, info := range codeTable {
		if info.code == s {
			return code, true
		}
	}
	return 0, false
}
