package engine

// Version is the engine version strategies declare compatibility against.
const Version = "1.0.0"
