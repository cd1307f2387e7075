package config

type SecurityLevel int

const (
	SecurityPublic   SecurityLevel = iota // No authentication
	SecurityOptional                      // Access token read when present, anonymous otherwise
	SecurityRefresh                       // Refresh token required
	SecurityAccess                        // Any access token
	SecurityMember                        // Access token of a user owning a member organization
	SecurityStaff                         // Access token of a staff user
)

func (l SecurityLevel) String() string {
	switch l {
	case SecurityPublic:
		return "public"
	case SecurityOptional:
		return "optional"
	case SecurityRefresh:
		return "refresh"
	case SecurityAccess:
		return "access"
	case SecurityMember:
		return "member"
	case SecurityStaff:
		return "staff"
	}
	return "unknown"
}

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth
	"auth.login":   SecurityPublic,
	"auth.refresh": SecurityRefresh,
	"auth.me":      SecurityAccess,

	// Ops
	"healthz": SecurityPublic,
	"metrics": SecurityPublic,

	// Member directory
	"members.list":            SecurityPublic,
	"members.get":             SecurityPublic,
	"profile.get":             SecurityMember,
	"profile.update":          SecurityMember,
	"profile.contacts.add":    SecurityMember,
	"staff.members.setStatus": SecurityStaff,

	// Applications
	"applications.submit":       SecurityPublic,
	"applications.list":         SecurityAccess,
	"staff.applications.review": SecurityStaff,

	// Payments
	"payments.create":          SecurityMember,
	"payments.list":            SecurityAccess,
	"staff.payments.setStatus": SecurityStaff,

	// Moderation
	"moderation.submit":        SecurityMember,
	"staff.moderation.list":    SecurityStaff,
	"staff.moderation.get":     SecurityStaff,
	"staff.moderation.approve": SecurityStaff,
	"staff.moderation.reject":  SecurityStaff,

	// Forum
	"forum.categories":      SecurityPublic,
	"forum.posts.list":      SecurityPublic,
	"forum.posts.get":       SecurityPublic,
	"forum.posts.comments":  SecurityPublic,
	"forum.posts.create":    SecurityMember,
	"forum.posts.mine":      SecurityMember,
	"forum.comments.create": SecurityMember,

	// Events
	"events.list":        SecurityPublic,
	"events.get":         SecurityPublic,
	"events.create":      SecurityMember,
	"events.mine":        SecurityMember,
	"events.register":    SecurityMember,
	"events.attendances": SecurityMember,

	// Postings
	"jobs.list":        SecurityPublic,
	"jobs.create":      SecurityMember,
	"jobs.mine":        SecurityMember,
	"trainings.list":   SecurityPublic,
	"trainings.create": SecurityMember,
	"trainings.mine":   SecurityMember,
	"tenders.list":     SecurityPublic,
	"tenders.create":   SecurityMember,
	"tenders.mine":     SecurityMember,

	// Resources & FAQs
	"resources.categories": SecurityPublic,
	"resources.list":       SecurityPublic,
	"resources.download":   SecurityPublic,
	"resources.create":     SecurityMember,
	"resources.mine":       SecurityMember,
	"faqs.categories":      SecurityPublic,
	"faqs.list":            SecurityPublic,

	// 3W
	"3w.states":          SecurityPublic,
	"3w.counties":        SecurityPublic,
	"3w.sectors":         SecurityPublic,
	"3w.presence.list":   SecurityPublic,
	"3w.presence.export": SecurityPublic,
	"3w.presence.create": SecurityMember,
	"3w.presence.mine":   SecurityMember,
	"3w.presence.delete": SecurityMember,

	// Security
	"security.incidents.list":     SecurityAccess,
	"security.incidents.get":      SecurityAccess,
	"security.incidents.create":   SecurityAccess,
	"staff.incidents.update":      SecurityStaff,
	"security.constraints.list":   SecurityAccess,
	"security.constraints.get":    SecurityAccess,
	"security.constraints.create": SecurityAccess,
	"staff.constraints.update":    SecurityStaff,

	// Pages, announcements & contact
	"pages.list":              SecurityPublic,
	"pages.get":               SecurityPublic,
	"announcements.list":      SecurityOptional,
	"contact.create":          SecurityOptional,
	"staff.contact.list":      SecurityStaff,
	"staff.contact.setStatus": SecurityStaff,

	// Uploads
	"uploads.request":  SecurityAccess,
	"upload.put":       SecurityPublic, // the upload token authorizes the write
	"download.public":  SecurityPublic,
	"download.private": SecurityAccess,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityStaff
}
