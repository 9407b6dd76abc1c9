package protocol

// Protocol delimiters
const (
	// CRLF terminates every command line sent to the server
	CRLF = "\r\n"

	// Space separates the status code from the reply body
	Space = " "
)

// Reply status codes. Every reply line starts with a 3-digit code followed
// by a space. The codes below form the success whitelist; everything else is
// surfaced as a ServerError carrying the code and message verbatim.
const (
	// CodeOK indicates the command completed ("OK")
	CodeOK = 200

	// CodeOKInline indicates the command completed and its data follows
	// on the same line ("OK (inline)")
	CodeOKInline = 201

	// CodeMoreInput indicates the server expects a follow-up line, e.g.
	// the PASS line after USER during the login sequence
	CodeMoreInput = 300
)

// Failure codes the server is known to return. The client never interprets
// these beyond exposing them on ServerError; they are listed so callers can
// pattern-match without magic numbers.
const (
	// CodeGeneralError covers unknown commands and unspecified failures
	CodeGeneralError = 500

	// CodeSyntaxError indicates the server could not parse the command line
	CodeSyntaxError = 501

	// CodeUnknownObject indicates an unknown account, domain, list or forwarder
	CodeUnknownObject = 512

	// CodeIncorrectPassword is returned by password verification commands
	CodeIncorrectPassword = 515

	// CodeAlreadyExists indicates the name is already in use
	CodeAlreadyExists = 520
)

// successCodes is the whitelist consulted by Classify. Any 3-digit code not
// present here is fatal for the issued command.
var successCodes = map[int]bool{
	CodeOK:        true,
	CodeOKInline:  true,
	CodeMoreInput: true,
}

// IsSuccessCode reports whether code is in the success whitelist.
func IsSuccessCode(code int) bool {
	return successCodes[code]
}
