// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - MotionController: Wheel motor actuation (IBT-2 H-bridge or simulated)
//   - DistanceSensor: Obstacle ranging (HC-SR04 or simulated)
//   - Clock: Time source for dead-reckoning motion
//   - MapSource: Campus map definition (embedded or file)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - NavigationHistoryStore: Navigation history. Without it, history is not kept.
//   - NavigationMetrics: Telemetry. Without it, nothing is exported.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
