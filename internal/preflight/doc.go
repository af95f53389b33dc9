// Package preflight runs environment checks before an extraction starts:
// archive layout presence, directory permissions, and free disk space.
package preflight
