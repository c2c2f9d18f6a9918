package utils

// Assert panics when condition is false. It is used for contract
// violations: states a single trusted caller must never reach, as opposed
// to recoverable errors, which are returned as error values.
func Assert(condition bool, message ...string) {
	if !condition {
		if len(message) == 1 {
			panic(message[0])
		}
		panic("failed assertion")
	}
}
