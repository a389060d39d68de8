// Package hardware drives the robot's physical motors and ultrasonic sensor
// through periph.io GPIO.
//
// The motor driver targets an IBT-2 H-bridge per wheel, with one PWM pin per
// direction. The sensor driver targets an HC-SR04. Detect chooses between
// these drivers and the simulated ones once, at startup.
package hardware
