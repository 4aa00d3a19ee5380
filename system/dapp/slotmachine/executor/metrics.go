// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"strings"

	st "github.com/33cn/slotmachine/system/dapp/slotmachine/types"
	"github.com/33cn/slotmachine/types"
	metrics "github.com/rcrowley/go-metrics"
)

const metricsPrefix = "slotmachine."

type slotMetrics struct {
	registry metrics.Registry
	commit   metrics.Counter
	reveal   metrics.Counter
	payout   metrics.Counter
	reject   metrics.Counter
}

func newSlotMetrics(r metrics.Registry) *slotMetrics {
	return &slotMetrics{
		registry: r,
		commit:   metrics.GetOrRegisterCounter(metricsPrefix+"commit", r),
		reveal:   metrics.GetOrRegisterCounter(metricsPrefix+"reveal", r),
		payout:   metrics.GetOrRegisterCounter(metricsPrefix+"payout.amount", r),
		reject:   metrics.GetOrRegisterCounter(metricsPrefix+"reject", r),
	}
}

// "Big Win" -> slotmachine.tier.big_win
func tierMetricName(label string) string {
	return metricsPrefix + "tier." + strings.ReplaceAll(strings.ToLower(label), " ", "_")
}

func (m *slotMetrics) tier(label string) metrics.Counter {
	return metrics.GetOrRegisterCounter(tierMetricName(label), m.registry)
}

// observe 只统计已经成功执行的交易, 以及被拒绝的次数
func (m *slotMetrics) observe(receipt *types.Receipt, err error) {
	if err != nil {
		m.reject.Inc(1)
		return
	}
	for _, l := range receipt.Logs {
		switch l.Ty {
		case st.TyLogSlotCommit:
			m.commit.Inc(1)
		case st.TyLogSlotSpin:
			var spin st.ReceiptSpin
			if types.Decode(l.Log, &spin) != nil {
				continue
			}
			m.reveal.Inc(1)
			m.payout.Inc(spin.Payout)
			m.tier(spin.Label).Inc(1)
		}
	}
}
