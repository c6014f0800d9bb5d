// Package watch reports file system changes for watch mode.
//
// It wraps fsnotify with recursive directory watching and debouncing: bursts
// of events (an editor saving, a bundler writing many files) are collapsed
// into one callback with the sorted list of changed paths.
//
// The serve command uses it twice: once on the config file, to rebuild the
// application and replace the running server, and once on local content
// roots, to emit build-complete notifications.
package watch
