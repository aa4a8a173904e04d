// Package caps parses MCCS capability strings.
//
// A capability string is a parenthesised list of named groups:
//
//	(prot(monitor)type(lcd)model(U2720Q)cmds(01 02 03 0C E3 F3)
//	 vcp(02 04 10 12 14(05 08 0B) 60(0F 11 1B) D6(01 04))mccs_ver(2.1))
//
// Real monitors get this wrong in many small ways: missing outer parens,
// hex lists without spaces, truncated trailing groups. Parse tolerates
// these and returns whatever prefix it could read together with an error
// wrapping ErrPartial. NewDescriptor reshapes a Tree into a flat feature
// table.
package caps
