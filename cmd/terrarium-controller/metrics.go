package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sweeney/terrarium-controller/internal/control"
	"github.com/sweeney/terrarium-controller/internal/settings"
)

type metrics struct {
	temperature  prometheus.Gauge
	humidity     prometheus.Gauge
	light        prometheus.Gauge
	actuators    *prometheus.GaugeVec
	settingVals  *prometheus.GaugeVec
	evaluations  prometheus.Counter
	sensorFaults prometheus.Counter
	menuSessions prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "terrarium",
			Name:      "temperature_degrees",
			Help:      "Last valid temperature reading, in the active unit",
		}),
		humidity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "terrarium",
			Name:      "humidity_percent",
			Help:      "Last valid relative humidity reading",
		}),
		light: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "terrarium",
			Name:      "light_percent",
			Help:      "Last valid light level, scaled to 0-100",
		}),
		actuators: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "terrarium",
			Name:      "actuator_on_binary",
			Help:      "Actuator flag state after the last evaluation",
		}, []string{"actuator"}),
		settingVals: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "terrarium",
			Name:      "setting_value",
			Help:      "Current threshold values",
		}, []string{"setting"}),
		evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "terrarium",
			Name:      "evaluations_total",
			Help:      "Eligible control ticks",
		}),
		sensorFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "terrarium",
			Name:      "sensor_faults_total",
			Help:      "Cycles skipped because the probe read was invalid",
		}),
		menuSessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "terrarium",
			Name:      "menu_sessions_total",
			Help:      "Settings menu activations",
		}),
	}

	reg.MustRegister(m.temperature, m.humidity, m.light, m.actuators,
		m.settingVals, m.evaluations, m.sensorFaults, m.menuSessions)
	return m
}

// observe records one eligible evaluation.
func (m *metrics) observe(r control.Reading, act control.Actuators) {
	m.temperature.Set(r.Temperature)
	m.humidity.Set(r.Humidity)
	m.light.Set(r.Light)

	set := func(name string, on bool) {
		v := 0.0
		if on {
			v = 1
		}
		m.actuators.WithLabelValues(name).Set(v)
	}
	set("heating", act.Heating)
	set("cooling", act.Cooling)
	set("misting", act.Misting)
	set("drying", act.Drying)
	set("lighting", act.Lighting)

	m.evaluations.Inc()
}

// settings records the threshold values after a menu session.
func (m *metrics) settings(values [settings.NumSlots]int) {
	names := [settings.NumSlots]string{"temp_low", "temp_high", "hum_low", "hum_high", "light_target"}
	for i, name := range names {
		m.settingVals.WithLabelValues(name).Set(float64(values[i]))
	}
}
