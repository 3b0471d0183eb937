/*
Package domain contains the core domain models of the Stepwise wizard engine.

It defines the static form definition (Form, Step, Field, Condition), the
runtime snapshot of a session (State, Value) and the read models produced by
rendering (View, Summary). This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Form: The ordered list of steps loaded from configuration.
  - Field: Static metadata describing one input and its visibility conditions.
  - State: The flat key/value store of a session plus its navigation position.
  - View: What the host should show for the current step.
*/
package domain
