package otp

import (
	"fmt"
	"time"
)

// buildOTPEmail renders the HTML login email around the code.
func buildOTPEmail(code string, ttl time.Duration) string {
	minutes := int(ttl.Minutes())
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="margin:0;padding:0;background:#f1f5f9;font-family:Arial,sans-serif">
  <div style="max-width:480px;margin:40px auto;border-radius:20px;overflow:hidden;box-shadow:0 8px 40px rgba(0,0,0,.12)">
    <div style="background:#0f172a;padding:32px;text-align:center">
      <div style="color:#4ade80;font-size:22px;font-weight:800">SmartBudget Pro</div>
      <div style="color:#64748b;font-size:13px;margin-top:4px">Personal Finance Tracker</div>
    </div>
    <div style="background:#ffffff;padding:36px 32px;text-align:center">
      <p style="color:#374151;font-size:15px;margin-bottom:6px">Your one-time login code:</p>
      <div style="background:#f0fdf4;border:2px solid #4ade80;border-radius:16px;padding:24px;margin:20px 0;display:inline-block;min-width:240px">
        <div style="font-size:42px;font-weight:900;letter-spacing:14px;color:#16a34a;font-family:monospace">%s</div>
      </div>
      <p style="color:#6b7280;font-size:13px;line-height:1.7;margin:0">
        Valid for <strong>%d minutes</strong>.<br>
        Don't share this code with anyone.<br>
        Didn't request this? Ignore this email.
      </p>
    </div>
    <div style="background:#f8fafc;padding:18px;text-align:center;border-top:1px solid #e2e8f0">
      <p style="color:#9ca3af;font-size:11px;margin:0">SmartBudget Pro &middot; Secure Login</p>
    </div>
  </div>
</body>
</html>`, code, minutes)
}
