// Package bbformat reads and writes machines in the bbchallenge.org
// standard text format.
//
// A machine is written as one segment per state, separated by '_'. Each
// segment holds one 3 character group per symbol read: the symbol to write,
// the direction ('L' or 'R') and the next state letter. The group "---"
// marks a transition that is left undefined. States are named 'A', 'B', ...
// in segment order and symbols are 0, 1, ... in group order.
//
// For example, the fifth busy beaver is
//
//	1RB1LC_1RC1RB_1RD0LE_1LA1LD_1RZ0LA
//
// Its state 'Z' is never defined, so the machine stops with an Error status
// once it is reached; by bbchallenge convention this is how it halts.
package bbformat
