// Package factory instantiates pluggable modules, such as metrics sinks,
// from configuration. A module is named by a type string and configured by a
// map of raw settings that the factory decodes into its own struct:
//
//	sinks := factory.NewRegistry[metrics.PlanRecorder]()
//	_ = sinks.Register("influx", func(conf map[string]any) (metrics.PlanRecorder, error) {
//	    var c struct{ URL string `json:"url"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return newInfluxSink(c.URL), nil
//	})
//	rec, err := sinks.Create(factory.ModuleConfig{Type: "influx", Conf: map[string]any{"url": "http://influx:8086"}})
package factory
