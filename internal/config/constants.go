package config

// Base application details
const AppName = "meetboard"
const DefaultConfigFileName = "config.toml"

// Surface defaults
const DefaultWidth = 1280
const DefaultHeight = 800
const DefaultBackground = "#ffffff"
const DefaultPenColor = "#000000"

// Brush radii for the two pen modes.
const DefaultDrawRadius = 2.0
const DefaultEraseRadius = 10.0

// Font size in pixels used for committed text.
const DefaultFontSize = 20.0

// Mirror defaults
const DefaultMirrorAddr = ":8888"
