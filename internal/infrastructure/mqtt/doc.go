// Package mqtt publishes staffdb run reports to an MQTT broker.
//
// The client is outbound only. It connects once per run, publishes the
// report, and disconnects; there are no subscriptions and no reconnects.
//
// Topics:
//
//	staffdb/report/{run_id}   run report (JSON, not retained)
//	staffdb/system/status     online / offline / LWT (retained)
//
// Usage:
//
//	client, err := mqtt.Connect(cfg.Report.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Publish(mqtt.Topics{}.Report(runID), payload, client.QoS(), false)
package mqtt
