// Package termlog colors terminal text and echoes structured records whose
// fields are taken from the calling expression.
//
// Every Format or Echo call looks up the source line that called into the
// package, parses it and records the variable names it mentions. In JSON
// mode those names become members of the output object next to the message
// text, resolved from the arguments of the call and from configured globals.
//
// Basic usage:
//
//	message := "green"
//	logger := termlog.New(termlog.WithJSON(true), termlog.WithColor(false))
//	fmt.Println(logger.Format("A", termlog.Red(message), "message!"))
//	// {"data":"A green message!","message":"green"}
//
// Echo writes the rendered record and honors the verbosity:
//
//	if _, err := termlog.Echo("retrying", attempt, termlog.WithTimestamp(true)); err != nil {
//		log.Fatal(err)
//	}
//
// Colors:
//
//	fmt.Println(termlog.Green("ok"), termlog.RGB("custom", 255, 128, 0))
//	out, err := termlog.Beautify(`{"a": 1}`, 2, "json")
//
// The process-wide configuration is changed with SetConfig and read with
// CurrentConfig; ConfigFromEnv reads the TERMLOG_* environment variables.
package termlog
