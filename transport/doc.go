// Package transport opens the UART link to a WT2003S module.
//
// The player package only needs an io.ReadWriter; this package supplies a
// real one backed by go.bug.st/serial:
//
//	port, err := transport.Open(transport.DefaultConfig("/dev/ttyUSB0"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p := player.New(port)
//	defer p.Close()
//
// A serial read timeout of zero bytes is reported by go.bug.st/serial as
// (0, nil); the player treats that as a short response.
package transport
