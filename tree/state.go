package tree

import "unicode"

// State is the parser's position relative to the token being read.
type State int

const (
	StateNone State = iota
	StateWaitLHS
	StateLHS
	StateWaitRHS
	StateRHS

	numStates
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "None"
	case StateWaitLHS:
		return "WaitLHS"
	case StateLHS:
		return "LHS"
	case StateWaitRHS:
		return "WaitRHS"
	case StateRHS:
		return "RHS"
	default:
		return "Unknown"
	}
}

type inputClass int

const (
	classText inputClass = iota
	classSpace
	classOpen
	classClose

	numClasses
)

func (c inputClass) String() string {
	switch c {
	case classText:
		return "Text"
	case classSpace:
		return "Space"
	case classOpen:
		return "Open"
	case classClose:
		return "Close"
	default:
		return "Unknown"
	}
}

func classify(r rune) inputClass {
	switch r {
	case '(', '[':
		return classOpen
	case ')', ']':
		return classClose
	}
	if unicode.IsSpace(r) {
		return classSpace
	}
	return classText
}

// closerFor returns the closing bracket matching opener.
func closerFor(opener rune) rune {
	if opener == '[' {
		return ']'
	}
	return ')'
}

type transition func(p *Parser, r rune)

// transitions is indexed by [state][input class]. Every cell is filled;
// combinations that do nothing map to ignore.
var transitions = [numStates][numClasses]transition{
	StateNone: {
		classText:  (*Parser).strayText,
		classSpace: (*Parser).ignore,
		classOpen:  (*Parser).open,
		classClose: (*Parser).close,
	},
	StateWaitLHS: {
		classText:  (*Parser).beginLHS,
		classSpace: (*Parser).ignore,
		classOpen:  (*Parser).open,
		classClose: (*Parser).close,
	},
	StateLHS: {
		classText:  (*Parser).appendText,
		classSpace: (*Parser).finishLHS,
		classOpen:  (*Parser).openDangling,
		classClose: (*Parser).closeDangling,
	},
	StateWaitRHS: {
		classText:  (*Parser).beginRHS,
		classSpace: (*Parser).ignore,
		classOpen:  (*Parser).open,
		classClose: (*Parser).close,
	},
	StateRHS: {
		classText:  (*Parser).appendText,
		classSpace: (*Parser).finishRHS,
		classOpen:  (*Parser).openDangling,
		classClose: (*Parser).closeTerminal,
	},
}
