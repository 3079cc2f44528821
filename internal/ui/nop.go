package ui

// Nop discards all output. It satisfies the method sets of both Logger
// and Spinner.
type Nop struct{}

func (Nop) Log(string)     {}
func (Nop) Break()         {}
func (Nop) Info(string)    {}
func (Nop) Warn(string)    {}
func (Nop) Success(string) {}
func (Nop) Error(string)   {}
func (Nop) Start(string)   {}
func (Nop) Stop()          {}
func (Nop) Succeed(string) {}
