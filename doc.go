/* Package main: stackforth, a small stack language in the manner of FORTH

A program is a sequence of whitespace separated tokens, read and executed one
at a time against a single operand stack. Every token is one of:

	123 -7          integer literal (int32), pushed
	1.5 -0.25 3.    float literal (float32), pushed
	'a '\n '\t      character literal, pushed; exactly one character after
	                the quote, once escapes are resolved
	+ - * /         integer arithmetic: ( y x -- y op x )
	.               pop and print the top value
	?               pop and print the top value's debug form, like Int(3)
	$               read an integer from input and push it
	dup swap over   ( x -- x x ) ( y x -- x y ) ( y x -- y x y )
	rot             ( z y x -- y x z )
	!  @            store ( val addr -- ) and retrieve ( addr -- val )
	variable NAME   allocate a memory cell; NAME pushes its address
	constant NAME   pop a value; NAME pushes it
	: NAME ... ;    define a word; NAME runs the words between
	NAME            reference to any of the above

Comments run from "(" to ")", and from "\" to the end of the line.

Execution halts at the first error, leaving all prior effects in place. After
a program runs to completion, the final stack is printed bottom first:

	1 2 3 + +
	=>
	6 <- Top

See prelude.go for words defined in terms of the builtins, which the -prelude
flag makes available to a program.
*/
package main
