// Package calendar applies duration values to real points in time.
//
// Calendar fields move through the calendar rather than by fixed
// elapsed time: adding a month to January 31st yields February 28th
// (clamped, 29th in leap years), and adding a day across a DST
// transition keeps the wall-clock time. Exact time fields always
// advance by true elapsed time.
//
// Between measures the gap between two instants greedily, largest
// units first. Measuring forward it is the exact inverse of Add:
// whenever from is not after to, Add(from, Between(from, to)) equals
// to.
package calendar
