// Package smtp implements email.EmailSender over plain SMTP for
// deployments that run their own relay instead of a delivery provider.
//
// The connection mode is configured via SMTP_TLS_MODE: "starttls" (default)
// upgrades after connect, "tls" dials an encrypted socket directly, and
// "plain" sends unencrypted for local relays and test fixtures.
//
//	sender, err := smtp.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	svc, err := magiclink.New(mgr, sender, linkCfg)
package smtp
