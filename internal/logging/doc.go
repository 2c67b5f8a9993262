// Package logger provides leveled console logging for shhcrypt commands.
//
// # Verbosity Levels
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages, including state transitions of a run
//
// Without flags, only critical warnings are shown; final results are printed
// by the commands themselves.
//
// # Log Methods
//
//	Logger.Infof()       // Shown with --verbose or --debug
//	Logger.Debugf()      // Shown only with --debug
//	Logger.Warnf()       // Shown with --verbose or --debug
//	Logger.WarnfAlways() // Always shown
//	Logger.WarnfUser()   // Always shown, formatted for end users
//	Logger.Errorf()      // Shown with --debug
//
// Passphrases and key material must never be passed to a Logger.
package logger
