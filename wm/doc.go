/*
Package wm holds the foundational types and functions shared by the wintermute packages:
leveled logging with optional rotating log files, integer 3d points, command-line argument
parsing, and path helpers.
*/
package wm
