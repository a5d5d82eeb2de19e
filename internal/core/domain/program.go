package domain

// Program identifies a loyalty program. The set is closed: free-form
// identifiers are rejected at the boundary.
type Program string

const (
	// ProgramXPoints is the universal hub currency. Any two programs
	// without a direct pairing convert through it.
	ProgramXPoints   Program = "XPOINTS"
	ProgramQantas    Program = "QANTAS"
	ProgramVelocity  Program = "VELOCITY"
	ProgramFlybuys   Program = "FLYBUYS"
	ProgramAsiaMiles Program = "ASIA_MILES"
	ProgramKrisFlyer Program = "KRISFLYER"
)

// HubProgram is the currency used to compose two-hop exchange rates.
const HubProgram = ProgramXPoints

var programs = map[Program]struct{}{
	ProgramXPoints:   {},
	ProgramQantas:    {},
	ProgramVelocity:  {},
	ProgramFlybuys:   {},
	ProgramAsiaMiles: {},
	ProgramKrisFlyer: {},
}

// Programs returns all recognized programs.
func Programs() []Program {
	return []Program{
		ProgramXPoints, ProgramQantas, ProgramVelocity,
		ProgramFlybuys, ProgramAsiaMiles, ProgramKrisFlyer,
	}
}

// ParseProgram validates a raw identifier against the closed program set.
func ParseProgram(s string) (Program, bool) {
	p := Program(s)
	_, ok := programs[p]
	return p, ok
}

// Valid reports whether p belongs to the recognized program set.
func (p Program) Valid() bool {
	_, ok := programs[p]
	return ok
}

func (p Program) String() string {
	return string(p)
}
