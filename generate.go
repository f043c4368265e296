//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/axicon-labs/constable --repository.default-branch master --repository.path /

package constable
