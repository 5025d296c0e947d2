// Package payment defines the gateway boundary of the billing engine and a
// simulated gateway for development and tests.
//
// A Processor returns a *Pending immediately. The caller waits for the Outcome
// with Await (bounded by a context) or AwaitTimeout. A Pending resolves exactly
// once; timeouts and cancellations are reported as failed outcomes, never as
// panics, so a caller can always drop the candidate subscription and retry.
//
//	sim := payment.NewSimulator(payment.WithSeed(42), payment.WithLatency(0))
//	out := sim.Process(ctx, sub, method).AwaitTimeout(30 * time.Second)
//	if !out.Success {
//	    return out.Error
//	}
//
// The simulator draws declines from math/rand/v2. It is deterministic when
// seeded and is not suitable for anything security related.
//
// UPIIntent renders upi://pay links and their QR codes for payers who scan
// with a UPI app.
package payment
