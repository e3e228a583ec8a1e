// Package load builds schema snapshots from live databases.
//
// An Inspector wraps the atlas inspector of the connection's dialect and
// converts inspected tables to the schema package model. A Snapshot is a
// captured copy that can be stored with msgpack and replayed offline. Both
// implement reverse.Source:
//
//	insp, err := load.Open(ctx, "postgres", dsn)
//	if err != nil {
//	    return err
//	}
//	defer insp.Close()
//
//	snap, err := load.Capture(ctx, insp)
//	if err != nil {
//	    return err
//	}
//	if err := load.SaveSnapshot("schema.msgpack", snap); err != nil {
//	    return err
//	}
package load
