// Package session drives one interactive configuration.
//
// A Session ties an interpreter to a configuration.State. Every placement
// goes through the candidate lists of the interpreter, so a session can only
// ever hold placements the feature model allows geometrically; the remaining
// constraints (mandatory, xor, requires, excludes, price) are checked on
// demand by Validate.
//
//	s := session.New(interpreter.New(model),
//		session.WithHistory("sqlite", store),
//		session.WithRecorder(collector),
//	)
//	frame, _ := s.PlaceFree(10)
//	_, _ = s.PlaceAt(frame.ID, interpreter.Above, 16)
//	report, err := s.Validate(ctx)
//
// Sessions are not safe for concurrent use.
package session
