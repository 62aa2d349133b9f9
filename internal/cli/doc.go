// Package cli provides the credvault command-line interface.
//
// It wires configuration, logging, the credential store and the account
// services into cobra commands and an interactive REPL. The REPL is a small
// state machine:
//
//	AwaitingCredentials: login, register, users, help, exit
//	Authenticated:       crack, strength, users, whoami, switch, help, exit
//	Exiting:             terminal
//
// A successful login moves to Authenticated, switch goes back to
// AwaitingCredentials, and exit or end of input moves to Exiting. Failed
// logins (no accounts, attempts exhausted) keep the machine where it was.
package cli
