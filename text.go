package main

import "github.com/Zachkp/profile-card/internal/profile"

var (
	Name     = "Raphael Manke"
	JobTitle = "IT consultant"
	ImageURL = "/15867688.jpeg"

	GitHubURL   = "https://github.com/RaphaelManke"
	LinkedInURL = "https://www.linkedin.com/in/raphael-%F0%9F%91%A8%E2%80%8D%F0%9F%92%BB-manke-a61912114/"
	WebsiteURL  = "https://www.codecentric.de/standorte/karlsruhe/karlsruhe-team#raphael-manke"
	TwitterURL  = "https://twitter.com/RaphaelManke"

	DescriptionEn = "Raphael Manke is a full-stack developer and consultant with five years of experience in developing serverless applications in the AWS cloud. AWS CDK changed his way of defining infrastructure as code dramatically and he likes to share his experiences and challenges along the way."

	DescriptionDe = "Raphael ist ein Full-Stack-Entwickler und Berater bei der codecentric AG mit Erfahrung in der Entwicklung von Serverless-Anwendungen in der AWS-Cloud. AWS CDK hat seine Art, Infrastruktur als Code zu definieren. Raphael teilt gerne seine Erfahrungen und Herausforderungen."
)

func defaultContent() profile.Content {
	return profile.Content{
		Name:          Name,
		JobTitle:      JobTitle,
		ImageURL:      ImageURL,
		GitHubURL:     GitHubURL,
		LinkedInURL:   LinkedInURL,
		WebsiteURL:    WebsiteURL,
		TwitterURL:    TwitterURL,
		DescriptionEn: DescriptionEn,
		DescriptionDe: DescriptionDe,
	}
}
