// Package simulated provides motor and sensor drivers that run without
// GPIO hardware. Motor commands are recorded and logged; the sensor
// returns a fixed or scripted sequence of readings.
package simulated
