// wblink-trace tails the event stream a wblink firmware forwards over its
// diagnostic UART and logs every decoded mailbox event.
package main

import (
	"errors"
	"flag"
	"io"
	"os"

	"github.com/golang/glog"

	"wblink/host/serial"
	"wblink/host/trace"
	"wblink/transport"
)

var (
	device = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud   = flag.Int("baud", 115200, "Baud rate of the diagnostic UART")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	cfg.ReadTimeout = 0

	port, err := serial.Open(cfg)
	if err != nil {
		glog.Errorf("open %s: %v", *device, err)
		os.Exit(1)
	}
	defer port.Close()

	glog.Infof("listening on %s at %d baud", *device, *baud)

	m := trace.NewMonitor(port)
	for {
		evt, err := m.Next()
		if errors.Is(err, io.EOF) {
			glog.Infof("stream closed, %d bytes dropped in resync", m.Dropped)
			return
		}
		if err != nil {
			glog.Errorf("read: %v", err)
			os.Exit(1)
		}

		switch evt.Kind {
		case transport.KindSysEvt:
			glog.Infof("sys event %s", evt)
		case transport.KindEvt:
			glog.Infof("ble event %s", evt)
		default:
			glog.Warningf("unexpected frame kind %#02x: %s", evt.Kind, evt)
		}
	}
}
