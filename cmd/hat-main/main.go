//go:build rp2040

// Hat bring-up: sensors on I2C0, GPS on UART0, LoRa radio on SPI0,
// telemetry service on a 1 s cycle. Pin assignments follow the hat
// schematic.
package main

import (
	"context"
	"time"

	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/lora"
	"tinygo.org/x/drivers/sx127x"

	"hatcode-go/drivers/hp203b"
	"hatcode-go/drivers/qmc5883l"
	"hatcode-go/errcode"
	"hatcode-go/services/telemetry"
)

const (
	gpsBaud = 9600

	uartTXPin = machine.GP0
	uartRXPin = machine.GP1

	i2cSDAPin = machine.GP6
	i2cSCLPin = machine.GP7

	spiSCKPin = machine.GP2
	spiSDOPin = machine.GP3
	spiSDIPin = machine.GP4

	loraCSPin  = machine.GP28
	loraRstPin = machine.GP29

	txTimeoutMs = 1000
)

// Restrict the GPS module to GGA output only.
const pmtkGGAOnly = "$PMTK314,0,0,0,1,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0*29\r\n"

// taskQueue is the cooperative task list: the trigger enqueues from its
// own goroutine, the main loop drains. Enqueue never blocks.
type taskQueue struct{ ch chan func() }

func newTaskQueue(depth int) *taskQueue { return &taskQueue{ch: make(chan func(), depth)} }

func (q *taskQueue) Enqueue(fn func()) bool {
	select {
	case q.ch <- fn:
		return true
	default:
		return false
	}
}

// flashStore adapts the persistent circular log.
// TODO: wire the flash circular-log driver; records are dropped until
// that lands.
type flashStore struct{}

func (flashStore) Append(rec []byte, cat telemetry.RecordCategory) error { return nil }

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	ctx := context.Background()

	// ----- Sensors on I2C0 -----
	i2c := machine.I2C0
	_ = i2c.Configure(machine.I2CConfig{
		SCL:       i2cSCLPin,
		SDA:       i2cSDAPin,
		Frequency: 400_000,
	})

	baro := hp203b.New(i2c)
	if code := baro.SelfTest(); code != errcode.OK {
		println("Warn: hp203b self-test:", code.Error())
	}

	mag := qmc5883l.New(i2c)
	mag.Initialize()
	if code := mag.SetConfig(qmc5883l.Config{
		Mode:  qmc5883l.ModeContinuous,
		ODR:   qmc5883l.ODR50Hz,
		OSR:   qmc5883l.OSR256,
		Scale: qmc5883l.Scale2G,
	}); code != errcode.OK {
		println("Warn: qmc5883l config:", code.Error())
	}
	if code := mag.SelfTest(); code != errcode.OK {
		println("Warn: qmc5883l self-test:", code.Error())
	}

	// ----- LoRa radio on SPI0 -----
	spi := machine.SPI0
	_ = spi.Configure(machine.SPIConfig{
		Frequency: 1_000_000,
		SCK:       spiSCKPin,
		SDO:       spiSDOPin,
		SDI:       spiSDIPin,
	})

	radio := sx127x.New(*spi, loraRstPin)
	radio.SetRadioController(sx127x.NewRadioControl(loraCSPin, machine.NoPin, machine.NoPin))
	radio.Reset()
	if !radio.DetectDevice() {
		println("Warn: sx127x not detected")
	}
	radio.LoraConfig(lora.Config{
		Freq:           868_000_000,
		Bw:             lora.Bandwidth_125_0,
		Sf:             lora.SpreadingFactor9,
		Cr:             lora.CodingRate4_5,
		Preamble:       12,
		Iq:             lora.IQStandard,
		Crc:            lora.CRCOn,
		SyncWord:       0x89,
		LoraTxPowerDBm: 15,
	})

	// ----- GPS on UART0 -----
	gps := uartx.UART0
	_ = gps.Configure(uartx.UARTConfig{
		BaudRate: gpsBaud,
		TX:       uartTXPin,
		RX:       uartRXPin,
	})
	_, _ = gps.Write([]byte(pmtkGGAOnly))

	// ----- Telemetry service -----
	var uid [8]byte
	copy(uid[:], machine.DeviceID())

	// Sensor caches, refreshed by the main loop and snapshotted per
	// cycle. Single task context: no locking needed.
	var snap telemetry.Snapshot
	snap.State = 'B'

	sched := newTaskQueue(8)
	svc := telemetry.New(sched, radio, flashStore{}, telemetry.Config{
		VehicleID:   telemetry.FoldVehicleID(uid),
		Snapshot:    func() telemetry.Snapshot { return snap },
		TxTimeoutMs: txTimeoutMs,
	})

	// Serial RX pump: bytes go straight into the sentence framer.
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := gps.RecvSomeContext(ctx, buf)
			if err != nil {
				continue
			}
			for i := 0; i < n; i++ {
				svc.Feed(buf[i])
			}
		}
	}()

	svc.Start(ctx)

	// ----- Task loop -----
	// Drains the cooperative queue and refreshes the baro cache
	// between cycles with the two-phase measure sequence.
	refresh := time.NewTicker(telemetry.DefaultPeriod)
	defer refresh.Stop()
	cycles := 0

	for {
		select {
		case fn := <-sched.ch:
			fn()
		case <-refresh.C:
			wait, code := baro.StartMeasurement(hp203b.ChanPresTemp, hp203b.OSR1024)
			if code != errcode.OK {
				println("Warn: baro start:", code.Error())
				continue
			}
			time.Sleep(wait)
			if data, code := baro.ReadBoth(); code == errcode.OK {
				snap.Baro = telemetry.BaroSample{Pressure: data.Pressure, Temp: data.Temp}
			}

			cycles++
			if cycles%10 == 0 {
				if field, code := mag.ReadField(); code == errcode.OK {
					println("Info: mag", field[0], field[1], field[2])
				}
			}
		}
	}
}
