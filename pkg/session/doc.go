/*
Package session coordinates concurrent access to wizard sessions.

A Manager wraps a ports.StateStore with per-session locks so that
read-modify-write cycles (load, apply an engine operation, save) never lose
updates, optionally extending the exclusion across replicas with a
ports.DistributedLocker.
*/
package session
