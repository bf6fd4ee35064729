// Package control is the polling loop of the hand-held unit.
//
// Each tick samples the stick, the pot and the button, advances the angle
// state, signals the LED ring, drives the servo, redraws the gauge and then
// sleeps for an interval set by the pot. The loop owns its ControlState and
// talks to hardware only through the hal interfaces, so tests run it with
// fakes and a clock that does not block.
package control
