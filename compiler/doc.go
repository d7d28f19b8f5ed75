/*

Process of translation

Resolved Netlist (netlist) ->
	build ->
Intermediate Representation (ir) ->
	merge ->
Merged ir ->
	name nets ->
Named ir ->
	format ->
Text

Nets and ports live in arenas of the ir.Circuit and are addressed by handles.
Every stage mutates the circuit in place and completes before the next one starts.

*/
package compiler
