// Package services contains the core business logic, wired together from
// the driven ports and exposed through the driving ports.
package services
